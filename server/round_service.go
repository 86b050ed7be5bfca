package server

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/db/redis"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/events/kafka"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/game"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/logging"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/pkg/feed"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/pkg/provablyfair"
)

const snapshotTimeout = 5 * time.Second

// RoundService coordinates the table with its side-effect
// collaborators: the event producer, the snapshot store, and the live
// round feed. The table alone decides round outcomes; everything here
// is best-effort and never fails a settled round.
type RoundService struct {
	table       *game.Table
	producer    *kafka.Producer
	store       *redis.Store
	broadcaster *feed.Broadcaster
	logger      zerolog.Logger
}

// NewRoundService creates a round service. producer and store may be
// nil when the corresponding backends are not configured.
func NewRoundService(table *game.Table, producer *kafka.Producer, store *redis.Store, broadcaster *feed.Broadcaster, logger zerolog.Logger) *RoundService {
	return &RoundService{
		table:       table,
		producer:    producer,
		store:       store,
		broadcaster: broadcaster,
		logger:      logging.WithComponent(logger, "round_service"),
	}
}

// Balance returns the current ledger balance.
func (s *RoundService) Balance() decimal.Decimal {
	return s.table.Balance()
}

// Spin runs one round and fans the settled result out to the
// collaborators. The returned result reflects the ledger exactly;
// publish or persistence failures are logged, not propagated.
func (s *RoundService) Spin(ctx context.Context, bets []game.Bet) (*game.RoundResult, error) {
	result, err := s.table.Spin(bets)
	if err != nil {
		return nil, err
	}

	record := game.RoundRecord{
		Timestamp:     time.Now().UTC(),
		WinningNumber: result.WinningNumber,
		WinningColor:  result.WinningColor,
		TotalStaked:   result.TotalStaked,
		TotalPaid:     result.TotalPaid,
		NetProfit:     result.NetProfit,
	}

	if s.broadcaster != nil {
		s.broadcaster.Publish(record)
	}

	if s.producer != nil {
		event := kafka.RoundSettledEvent{
			RoundID:       result.RoundID,
			WinningNumber: result.WinningNumber,
			WinningColor:  string(result.WinningColor),
			TotalStaked:   result.TotalStaked,
			TotalPaid:     result.TotalPaid,
			NetProfit:     result.NetProfit,
			Timestamp:     record.Timestamp,
		}
		if err := s.producer.PublishRoundSettled(event); err != nil {
			s.logger.Warn().Err(err).Str("round_id", result.RoundID).Msg("Failed to publish round event")
		}
	}

	s.persistSnapshot(ctx)

	return result, nil
}

// History returns up to limit records, most recent first.
func (s *RoundService) History(limit int) []game.RoundRecord {
	return s.table.History(limit)
}

// Reset restores the starting balance, clears history, and rotates the
// commitment. Returns the new balance.
func (s *RoundService) Reset(ctx context.Context) (decimal.Decimal, error) {
	balance, err := s.table.Reset()
	if err != nil {
		return decimal.Zero, err
	}
	s.persistSnapshot(ctx)
	return balance, nil
}

// CommitmentHash returns the published hash for the next draw.
func (s *RoundService) CommitmentHash() string {
	return s.table.CommitmentHash()
}

// LastProof returns the verification record of the last settled round.
func (s *RoundService) LastProof() (provablyfair.Proof, bool) {
	return s.table.LastProof()
}

// Broadcaster exposes the live feed for the websocket handler.
func (s *RoundService) Broadcaster() *feed.Broadcaster {
	return s.broadcaster
}

func (s *RoundService) persistSnapshot(ctx context.Context) {
	if s.store == nil {
		return
	}
	snapCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()
	if err := s.store.SaveSnapshot(snapCtx, s.table.Snapshot()); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist table snapshot")
	}
}
