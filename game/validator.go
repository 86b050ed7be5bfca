package game

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
)

// Limits bounds a single stake.
type Limits struct {
	MinBet decimal.Decimal
	MaxBet decimal.Decimal
}

// ValidateBet checks one bet: amount bounds, recognized type, number
// range, then type-specific geometry. Checks run in that order and the
// first failure wins, so a malformed amount is reported before a
// malformed shape.
func (l Limits) ValidateBet(b Bet) error {
	if !b.Amount.IsPositive() {
		return errors.New(errors.CodeInvalidBet, "bet amount must be positive")
	}
	if b.Amount.LessThan(l.MinBet) {
		return errors.Newf(errors.CodeInvalidBet, "bet amount below table minimum of %s", l.MinBet)
	}
	if b.Amount.GreaterThan(l.MaxBet) {
		return errors.Newf(errors.CodeInvalidBet, "bet amount above table maximum of %s", l.MaxBet)
	}

	if !b.Type.Valid() {
		return errors.Newf(errors.CodeInvalidBetType, "unknown bet type %q", string(b.Type))
	}

	for _, n := range b.Numbers {
		if n < 0 || n > 36 {
			return errors.Newf(errors.CodeInvalidBet, "number %d is outside the 0-36 layout", n)
		}
	}
	if len(lo.Uniq(b.Numbers)) != len(b.Numbers) {
		return errors.New(errors.CodeInvalidBet, "duplicate numbers in bet")
	}

	return validateShape(b)
}

// validateShape runs the type-specific structural check. Inside bets
// delegate to the layout predicates; outside bets must cover exactly
// one of the fixed partitions, not merely 12 or 18 numbers of the
// right kind.
func validateShape(b Bet) error {
	switch b.Type {
	case BetStraight:
		if len(b.Numbers) != 1 {
			return errors.New(errors.CodeInvalidBet, "straight bet must cover exactly one number")
		}
		return nil
	case BetSplit:
		if !IsValidSplit(b.Numbers) {
			return errors.New(errors.CodeInvalidBet, "split bet must cover two adjacent numbers")
		}
		return nil
	case BetStreet:
		if !IsValidStreet(b.Numbers) {
			return errors.New(errors.CodeInvalidBet, "street bet must cover one full row of three")
		}
		return nil
	case BetCorner:
		if !IsValidCorner(b.Numbers) {
			return errors.New(errors.CodeInvalidBet, "corner bet must cover four numbers meeting at one intersection")
		}
		return nil
	case BetLine:
		if !IsValidLine(b.Numbers) {
			return errors.New(errors.CodeInvalidBet, "line bet must cover two adjacent rows of three")
		}
		return nil
	case BetColumn:
		if !matchesAnyPartition(b.Numbers, Columns[:]) {
			return errors.New(errors.CodeInvalidBet, "column bet must cover exactly one of the three columns")
		}
		return nil
	case BetDozen:
		if !matchesAnyPartition(b.Numbers, Dozens[:]) {
			return errors.New(errors.CodeInvalidBet, "dozen bet must cover exactly one of the three dozens")
		}
		return nil
	case BetRed:
		return requireExactSet(b.Numbers, RedNumbers, "red bet must cover exactly the red numbers")
	case BetBlack:
		return requireExactSet(b.Numbers, BlackNumbers, "black bet must cover exactly the black numbers")
	case BetOdd:
		return requireExactSet(b.Numbers, OddNumbers, "odd bet must cover exactly the odd numbers")
	case BetEven:
		return requireExactSet(b.Numbers, EvenNumbers, "even bet must cover exactly the even numbers")
	case BetLow:
		return requireExactSet(b.Numbers, LowNumbers, "low bet must cover exactly 1-18")
	case BetHigh:
		return requireExactSet(b.Numbers, HighNumbers, "high bet must cover exactly 19-36")
	}
	// Unreachable: Valid() gates the type before this switch.
	return errors.Newf(errors.CodeInvalidBetType, "unknown bet type %q", string(b.Type))
}

func matchesAnyPartition(numbers []int, partitions [][]int) bool {
	for _, p := range partitions {
		if sameSet(numbers, p) {
			return true
		}
	}
	return false
}

func requireExactSet(numbers, want []int, message string) error {
	if !sameSet(numbers, want) {
		return errors.New(errors.CodeInvalidBet, message)
	}
	return nil
}

// sameSet compares two number sets in canonical sorted order.
func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := sortedCopy(a), sortedCopy(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// ValidateBatch checks every bet and then affordability. Any invalid
// bet short-circuits with that bet's error; the balance check runs
// only once the whole batch is structurally sound, so a malformed bet
// is always reported before an affordability problem.
func (l Limits) ValidateBatch(bets []Bet, balance decimal.Decimal) error {
	if len(bets) == 0 {
		return errors.New(errors.CodeInvalidBet, "at least one bet required")
	}
	for _, b := range bets {
		if err := l.ValidateBet(b); err != nil {
			return err
		}
	}
	total := decimal.Zero
	for _, b := range bets {
		total = total.Add(b.Amount)
	}
	if total.GreaterThan(balance) {
		return errors.Newf(errors.CodeInsufficientBalance,
			"bets total %s exceeds balance %s", total, balance)
	}
	return nil
}
