// Package redis persists table snapshots. The whole ledger plus
// commitment state is stored as one JSON value under one key, so a
// snapshot is atomic by construction: a reader sees either the
// pre-round or post-round state, never a partial write.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/config"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/game"
)

const snapshotKey = "roulette:table:snapshot"

// Store provides snapshot persistence on Redis.
type Store struct {
	client *redis.Client
}

// New creates a snapshot store, verifying connectivity.
func New(cfg config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// SaveSnapshot writes the full table snapshot as one SET.
func (s *Store) SaveSnapshot(ctx context.Context, snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the stored snapshot. The second return is false
// when none exists.
func (s *Store) LoadSnapshot(ctx context.Context) (game.Snapshot, bool, error) {
	var snap game.Snapshot
	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// DeleteSnapshot removes the stored snapshot.
func (s *Store) DeleteSnapshot(ctx context.Context) error {
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
