// Package kafka publishes round-settled events so downstream consumers
// (analytics, monitoring) can follow table activity without polling.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/logging"
)

const defaultWorkerNum = 4

// RoundSettledEvent is the payload published after each recorded
// round.
type RoundSettledEvent struct {
	RoundID       string          `json:"roundId"`
	WinningNumber int             `json:"winningNumber"`
	WinningColor  string          `json:"winningColor"`
	TotalStaked   decimal.Decimal `json:"totalStaked"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Producer wraps an async Kafka writer with a small worker pool, so
// publishing never blocks round settlement.
type Producer struct {
	writer    *kafka.Writer
	topic     string
	logger    zerolog.Logger
	jobs      chan kafka.Message
	workerNum int
	wg        sync.WaitGroup
}

// ProducerConfig holds configuration for the round event producer
type ProducerConfig struct {
	Brokers   []string
	Topic     string
	Logger    zerolog.Logger
	WorkerNum int
}

// NewProducer creates a producer, or nil when no brokers are
// configured (publishing disabled).
func NewProducer(config ProducerConfig) *Producer {
	if len(config.Brokers) == 0 {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	workerNum := config.WorkerNum
	if workerNum <= 0 {
		workerNum = defaultWorkerNum
	}

	p := &Producer{
		writer:    writer,
		topic:     config.Topic,
		logger:    logging.WithComponent(config.Logger, "kafka-producer"),
		jobs:      make(chan kafka.Message, 100),
		workerNum: workerNum,
	}

	for i := 0; i < workerNum; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Producer) worker() {
	defer p.wg.Done()
	for msg := range p.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Error().
				Err(err).
				Str("topic", msg.Topic).
				Str("key", string(msg.Key)).
				Msg("Failed to send message to Kafka")
		} else {
			p.logger.Debug().
				Str("topic", msg.Topic).
				Str("key", string(msg.Key)).
				Msg("Message sent to Kafka")
		}
		cancel()
	}
}

// PublishRoundSettled enqueues a round-settled event keyed by round
// ID. Returns an error only when the event cannot be encoded.
func (p *Producer) PublishRoundSettled(event RoundSettledEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal round event: %w", err)
	}

	select {
	case p.jobs <- kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.RoundID),
		Value: payload,
		Time:  event.Timestamp,
	}:
	default:
		p.logger.Warn().Str("round_id", event.RoundID).Msg("Event queue full, dropping round event")
	}
	return nil
}

// Close drains the queue and closes the writer.
func (p *Producer) Close() error {
	close(p.jobs)
	p.wg.Wait()
	return p.writer.Close()
}
