package wire

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/config"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/db/redis"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/events/kafka"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/game"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/logging"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/pkg/feed"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/server"
)

// ProvideLogger creates the application logger from configuration.
func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(cfg.Logging)
}

// ProvideTableConfig converts the game section of the configuration
// into table limits.
func ProvideTableConfig(cfg *config.Config) game.TableConfig {
	return game.TableConfig{
		InitialBalance: decimal.NewFromFloat(cfg.Game.InitialBalance),
		Limits: game.Limits{
			MinBet: decimal.NewFromFloat(cfg.Game.MinBet),
			MaxBet: decimal.NewFromFloat(cfg.Game.MaxBet),
		},
	}
}

// ProvideTable creates the round orchestrator and, when a snapshot
// store is available, restores the persisted ledger.
func ProvideTable(tableCfg game.TableConfig, store *redis.Store, logger zerolog.Logger) (*game.Table, error) {
	table, err := game.NewTable(tableCfg, logger)
	if err != nil {
		return nil, err
	}
	if store != nil {
		snap, found, err := store.LoadSnapshot(context.Background())
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to load table snapshot, starting fresh")
		} else if found {
			table.Restore(snap)
			logger.Info().Str("balance", snap.Balance.String()).Msg("Table restored from snapshot")
		}
	}
	return table, nil
}

// ProvideRedisStore creates the optional snapshot store. Returns nil
// when no Redis address is configured.
func ProvideRedisStore(cfg *config.Config, logger zerolog.Logger) (*redis.Store, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	store, err := redis.New(cfg.Redis)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Snapshot store connected")
	return store, nil
}

// ProvideProducer creates the optional round event producer. Returns
// nil when no brokers are configured.
func ProvideProducer(cfg *config.Config, logger zerolog.Logger) *kafka.Producer {
	return kafka.NewProducer(kafka.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		Logger:  logger,
	})
}

// ProvideBroadcaster creates the live round feed.
func ProvideBroadcaster() *feed.Broadcaster {
	return feed.NewBroadcaster(0)
}

// ProvideRoundService creates the round service
func ProvideRoundService(table *game.Table, producer *kafka.Producer, store *redis.Store, broadcaster *feed.Broadcaster, logger zerolog.Logger) *server.RoundService {
	return server.NewRoundService(table, producer, store, broadcaster, logger)
}

// ProvideApp assembles the HTTP application.
func ProvideApp(cfg *config.Config, logger zerolog.Logger, service *server.RoundService, broadcaster *feed.Broadcaster) *server.App {
	return server.New(server.Options{
		Config:      cfg,
		Logger:      logger,
		GameHandler: server.NewGameHandler(service),
		FeedHandler: server.NewFeedHandler(broadcaster, logger),
	})
}

// AppSet is the full provider set for the application.
var AppSet = wire.NewSet(
	ProvideLogger,
	ProvideTableConfig,
	ProvideTable,
	ProvideRedisStore,
	ProvideProducer,
	ProvideBroadcaster,
	ProvideRoundService,
	ProvideApp,
)

// BuildApp wires the application by hand, in provider order. It also
// returns the producer and store so the caller can close them on
// shutdown.
func BuildApp(cfg *config.Config) (*server.App, *kafka.Producer, *redis.Store, error) {
	logger := ProvideLogger(cfg)

	store, err := ProvideRedisStore(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	table, err := ProvideTable(ProvideTableConfig(cfg), store, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	producer := ProvideProducer(cfg, logger)
	broadcaster := ProvideBroadcaster()
	service := ProvideRoundService(table, producer, store, broadcaster, logger)
	app := ProvideApp(cfg, logger, service, broadcaster)

	return app, producer, store, nil
}
