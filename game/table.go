package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/logging"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/pkg/provablyfair"
)

// HistoryCap bounds the round history; oldest entries are evicted
// first.
const HistoryCap = 100

// TableConfig configures a table's ledger and limits.
type TableConfig struct {
	InitialBalance decimal.Decimal
	Limits         Limits
}

// Table is the round orchestrator. It owns the ledger (balance,
// bounded history, last-round proof) and the outcome generator, and
// runs exactly one round at a time.
//
// Flow for one round: validate batch -> debit total stake -> draw ->
// settle -> credit winnings -> append history. The whole sequence runs
// under one mutex, so two rounds can never interleave their debits and
// credits; reads take the same mutex and always observe a pre-round or
// post-round ledger, never a half-updated one.
type Table struct {
	mu      sync.Mutex
	cfg     TableConfig
	balance decimal.Decimal
	history []RoundRecord
	gen     *provablyfair.Generator
	logger  zerolog.Logger
}

// NewTable creates a table with a fresh commitment and the configured
// starting balance.
func NewTable(cfg TableConfig, logger zerolog.Logger) (*Table, error) {
	gen, err := provablyfair.New()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeServerError, "failed to initialize outcome generator")
	}
	return &Table{
		cfg:     cfg,
		balance: cfg.InitialBalance,
		gen:     gen,
		logger:  logging.WithComponent(logger, "table"),
	}, nil
}

// Balance returns the current ledger balance.
func (t *Table) Balance() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balance
}

// Spin runs one full round. Validation failures abort before any
// ledger mutation; once the stake is debited the round always runs
// through to a recorded result.
func (t *Table) Spin(bets []Bet) (*RoundResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cfg.Limits.ValidateBatch(bets, t.balance); err != nil {
		return nil, err
	}

	totalStaked := decimal.Zero
	for _, b := range bets {
		totalStaked = totalStaked.Add(b.Amount)
	}
	t.balance = t.balance.Sub(totalStaked)

	winningNumber, _ := t.gen.Spin()
	outcomes, totals := Settle(bets, winningNumber)
	t.balance = t.balance.Add(totals.TotalPaid)

	record := RoundRecord{
		Timestamp:     time.Now().UTC(),
		WinningNumber: winningNumber,
		WinningColor:  ColorOf(winningNumber),
		TotalStaked:   totals.TotalStaked,
		TotalPaid:     totals.TotalPaid,
		NetProfit:     totals.NetProfit,
	}
	t.appendHistory(record)

	result := &RoundResult{
		RoundID:       uuid.New().String(),
		WinningNumber: winningNumber,
		WinningColor:  record.WinningColor,
		TotalStaked:   totals.TotalStaked,
		TotalPaid:     totals.TotalPaid,
		NetProfit:     totals.NetProfit,
		NewBalance:    t.balance,
		Outcomes:      outcomes,
	}

	t.logger.Info().
		Str("round_id", result.RoundID).
		Int("winning_number", winningNumber).
		Str("winning_color", string(record.WinningColor)).
		Str("total_staked", totals.TotalStaked.String()).
		Str("total_paid", totals.TotalPaid.String()).
		Str("balance", t.balance.String()).
		Msg("Round settled")

	return result, nil
}

func (t *Table) appendHistory(r RoundRecord) {
	t.history = append(t.history, r)
	if len(t.history) > HistoryCap {
		t.history = t.history[len(t.history)-HistoryCap:]
	}
}

// History returns up to limit records, most recent first. The limit is
// clamped to [1, HistoryCap].
func (t *Table) History(limit int) []RoundRecord {
	if limit < 1 {
		limit = 1
	}
	if limit > HistoryCap {
		limit = HistoryCap
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if limit > len(t.history) {
		limit = len(t.history)
	}
	out := make([]RoundRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = t.history[len(t.history)-1-i]
	}
	return out
}

// Reset restores the initial balance, clears history, and rotates the
// outcome generator's commitment as one unit. Returns the new balance.
func (t *Table) Reset() (decimal.Decimal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.gen.Rotate(); err != nil {
		return decimal.Zero, errors.Wrap(err, errors.CodeServerError, "failed to rotate commitment")
	}
	t.balance = t.cfg.InitialBalance
	t.history = nil

	t.logger.Info().Str("balance", t.balance.String()).Msg("Table reset")
	return t.balance, nil
}

// CommitmentHash returns the published hash for the next draw.
func (t *Table) CommitmentHash() string {
	return t.gen.CommitmentHash()
}

// LastProof returns the verification record of the last settled round,
// if any.
func (t *Table) LastProof() (provablyfair.Proof, bool) {
	return t.gen.LastProof()
}

// Snapshot is the full ledger plus generator state, captured
// atomically for an external persistence collaborator.
type Snapshot struct {
	Balance decimal.Decimal    `json:"balance"`
	History []RoundRecord      `json:"history"`
	Fair    provablyfair.State `json:"fair"`
}

// Snapshot captures the whole table state under the round mutex.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	history := make([]RoundRecord, len(t.history))
	copy(history, t.history)
	return Snapshot{
		Balance: t.balance,
		History: history,
		Fair:    t.gen.Snapshot(),
	}
}

// Restore replaces the whole table state from a snapshot.
func (t *Table) Restore(s Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balance = s.Balance
	t.history = make([]RoundRecord, len(s.History))
	copy(t.history, s.History)
	if len(t.history) > HistoryCap {
		t.history = t.history[len(t.history)-HistoryCap:]
	}
	t.gen.Restore(s.Fair)
}
