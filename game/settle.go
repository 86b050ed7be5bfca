package game

import "github.com/shopspring/decimal"

// Settle resolves a validated batch against the winning number. Pure
// function: same inputs, same outcomes. A zero wins only straight bets
// on 0; every outside reference set excludes 0, so no special case is
// needed here.
func Settle(bets []Bet, winningNumber int) ([]BetOutcome, Totals) {
	outcomes := make([]BetOutcome, 0, len(bets))
	totals := Totals{
		TotalStaked: decimal.Zero,
		TotalPaid:   decimal.Zero,
	}

	for _, b := range bets {
		won := b.Covers(winningNumber)
		payout := decimal.Zero
		if won {
			// Payout includes the returned stake: amount*(multiplier+1).
			payout = b.Amount.Mul(decimal.NewFromInt(b.Type.Multiplier() + 1))
		}
		outcomes = append(outcomes, BetOutcome{
			Bet:    b,
			Won:    won,
			Payout: payout,
		})
		totals.TotalStaked = totals.TotalStaked.Add(b.Amount)
		totals.TotalPaid = totals.TotalPaid.Add(payout)
	}

	totals.NetProfit = totals.TotalPaid.Sub(totals.TotalStaked)
	return outcomes, totals
}
