package game

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetType is the closed set of wagers the table accepts.
type BetType string

const (
	BetStraight BetType = "straight"
	BetSplit    BetType = "split"
	BetStreet   BetType = "street"
	BetCorner   BetType = "corner"
	BetLine     BetType = "line"
	BetColumn   BetType = "column"
	BetDozen    BetType = "dozen"
	BetRed      BetType = "red"
	BetBlack    BetType = "black"
	BetOdd      BetType = "odd"
	BetEven     BetType = "even"
	BetLow      BetType = "low"
	BetHigh     BetType = "high"
)

// BetTypes lists every recognized variant. Valid, Multiplier and
// Coverage are the canonical switches; a new variant must be added to
// all of them plus the validator's geometry check.
var BetTypes = []BetType{
	BetStraight, BetSplit, BetStreet, BetCorner, BetLine,
	BetColumn, BetDozen, BetRed, BetBlack, BetOdd, BetEven, BetLow, BetHigh,
}

// Valid reports whether t is one of the recognized variants.
func (t BetType) Valid() bool {
	switch t {
	case BetStraight, BetSplit, BetStreet, BetCorner, BetLine,
		BetColumn, BetDozen, BetRed, BetBlack, BetOdd, BetEven, BetLow, BetHigh:
		return true
	}
	return false
}

// Multiplier returns the fixed payout multiplier for the type. A
// winning bet pays amount*multiplier plus the returned stake.
func (t BetType) Multiplier() int64 {
	switch t {
	case BetStraight:
		return 35
	case BetSplit:
		return 17
	case BetStreet:
		return 11
	case BetCorner:
		return 8
	case BetLine:
		return 5
	case BetColumn, BetDozen:
		return 2
	case BetRed, BetBlack, BetOdd, BetEven, BetLow, BetHigh:
		return 1
	}
	return 0
}

// Coverage returns how many numbers a bet of this type must cover.
func (t BetType) Coverage() int {
	switch t {
	case BetStraight:
		return 1
	case BetSplit:
		return 2
	case BetStreet:
		return 3
	case BetCorner:
		return 4
	case BetLine:
		return 6
	case BetColumn, BetDozen:
		return 12
	case BetRed, BetBlack, BetOdd, BetEven, BetLow, BetHigh:
		return 18
	}
	return 0
}

// Bet is a single wager: a type, the covered numbers, and a stake.
// Immutable once validated; consumed once per round.
type Bet struct {
	Type    BetType         `json:"type"`
	Numbers []int           `json:"numbers"`
	Amount  decimal.Decimal `json:"amount"`
}

// Covers reports whether n is among the bet's covered numbers.
func (b Bet) Covers(n int) bool {
	for _, m := range b.Numbers {
		if m == n {
			return true
		}
	}
	return false
}

// BetOutcome is a settled bet. Payout includes the returned stake on a
// win (amount*(multiplier+1)) and is zero on a loss; the stake was
// already debited when the round started.
type BetOutcome struct {
	Bet
	Won    bool            `json:"won"`
	Payout decimal.Decimal `json:"payout"`
}

// Totals aggregates a settled batch.
type Totals struct {
	TotalStaked decimal.Decimal `json:"totalStaked"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	NetProfit   decimal.Decimal `json:"netProfit"`
}

// RoundRecord is one history entry. The table keeps the newest
// HistoryCap records, evicting oldest-first.
type RoundRecord struct {
	Timestamp     time.Time       `json:"timestamp"`
	WinningNumber int             `json:"winningNumber"`
	WinningColor  Color           `json:"winningColor"`
	TotalStaked   decimal.Decimal `json:"totalStaked"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// RoundResult is the full outcome of one settled round, returned to
// the transport layer.
type RoundResult struct {
	RoundID       string          `json:"roundId"`
	WinningNumber int             `json:"winningNumber"`
	WinningColor  Color           `json:"winningColor"`
	TotalStaked   decimal.Decimal `json:"totalStaked"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	Outcomes      []BetOutcome    `json:"outcomes"`
}
