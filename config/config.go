package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/logging"
)

// Config holds all application configuration
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Game        GameConfig     `mapstructure:"game"`
	JWT         JWTConfig      `mapstructure:"jwt"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Logging     logging.Config `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	EnableCORS   bool          `mapstructure:"enable_cors"`
}

// GameConfig holds the table configuration: starting balance and
// per-bet stake bounds.
type GameConfig struct {
	InitialBalance float64 `mapstructure:"initial_balance"`
	MinBet         float64 `mapstructure:"min_bet"`
	MaxBet         float64 `mapstructure:"max_bet"`
}

// JWTConfig holds JWT configuration. When Secret is empty the reset
// endpoint is left open (development only).
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// KafkaConfig holds the optional round-event producer configuration.
// An empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// RedisConfig holds the optional snapshot store configuration. An
// empty address disables snapshotting.
type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Load loads configuration from a YAML file using Viper
func Load(filename string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(filename)
	v.SetConfigType("yaml")

	// Enable environment variable substitution
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.setDefaults()

	return &config, nil
}

// Default returns a config with every default applied and no file
// read. Used when the service runs without a config file.
func Default() *Config {
	var config Config
	config.setDefaults()
	return &config
}

// setDefaults sets default values for missing configuration
func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Game.InitialBalance == 0 {
		c.Game.InitialBalance = 1000
	}
	if c.Game.MinBet == 0 {
		c.Game.MinBet = 1
	}
	if c.Game.MaxBet == 0 {
		c.Game.MaxBet = 500
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "roulette.rounds"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.MinIdleConns == 0 {
		c.Redis.MinIdleConns = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// IsDevelopment returns true if environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// IsProduction returns true if environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
