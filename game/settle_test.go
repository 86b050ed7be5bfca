package game

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettleStraightWin(t *testing.T) {
	bets := []Bet{bet(BetStraight, []int{17}, 10)}
	outcomes, totals := Settle(bets, 17)

	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if !outcomes[0].Won {
		t.Error("expected straight bet on the winning number to win")
	}
	// 10 * (35 + 1): winnings plus the returned stake.
	if want := decimal.NewFromInt(360); !outcomes[0].Payout.Equal(want) {
		t.Errorf("expected payout %s, got %s", want, outcomes[0].Payout)
	}
	if want := decimal.NewFromInt(350); !totals.NetProfit.Equal(want) {
		t.Errorf("expected net profit %s, got %s", want, totals.NetProfit)
	}
}

func TestSettleLoss(t *testing.T) {
	bets := []Bet{bet(BetStraight, []int{17}, 10)}
	outcomes, totals := Settle(bets, 18)

	if outcomes[0].Won {
		t.Error("expected bet on a different number to lose")
	}
	if !outcomes[0].Payout.IsZero() {
		t.Errorf("expected zero payout on loss, got %s", outcomes[0].Payout)
	}
	if want := decimal.NewFromInt(-10); !totals.NetProfit.Equal(want) {
		t.Errorf("expected net profit %s, got %s", want, totals.NetProfit)
	}
}

func TestSettlePayoutMultipliers(t *testing.T) {
	tests := []struct {
		name       string
		bet        Bet
		winning    int
		wantPayout int64
	}{
		{"split pays 17 to 1", bet(BetSplit, []int{1, 2}, 10), 2, 180},
		{"street pays 11 to 1", bet(BetStreet, []int{4, 5, 6}, 10), 5, 120},
		{"corner pays 8 to 1", bet(BetCorner, []int{1, 2, 4, 5}, 10), 4, 90},
		{"line pays 5 to 1", bet(BetLine, []int{1, 2, 3, 4, 5, 6}, 10), 6, 60},
		{"column pays 2 to 1", bet(BetColumn, Columns[0], 10), 4, 30},
		{"dozen pays 2 to 1", bet(BetDozen, Dozens[0], 10), 12, 30},
		{"red pays even money", bet(BetRed, RedNumbers, 10), 1, 20},
		{"high pays even money", bet(BetHigh, HighNumbers, 10), 36, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes, _ := Settle([]Bet{tt.bet}, tt.winning)
			want := decimal.NewFromInt(tt.wantPayout)
			if !outcomes[0].Won {
				t.Fatal("expected bet to win")
			}
			if !outcomes[0].Payout.Equal(want) {
				t.Errorf("expected payout %s, got %s", want, outcomes[0].Payout)
			}
		})
	}
}

// Every outside bet loses on zero; only a straight on 0 pays.
func TestSettleZero(t *testing.T) {
	bets := []Bet{
		bet(BetRed, RedNumbers, 10),
		bet(BetBlack, BlackNumbers, 10),
		bet(BetOdd, OddNumbers, 10),
		bet(BetEven, EvenNumbers, 10),
		bet(BetLow, LowNumbers, 10),
		bet(BetHigh, HighNumbers, 10),
		bet(BetColumn, Columns[1], 10),
		bet(BetDozen, Dozens[0], 10),
		bet(BetStraight, []int{0}, 10),
	}
	outcomes, totals := Settle(bets, 0)

	for _, o := range outcomes {
		if o.Type == BetStraight {
			if !o.Won {
				t.Error("straight bet on 0 must win when 0 is drawn")
			}
			continue
		}
		if o.Won {
			t.Errorf("%s bet must lose on zero", o.Type)
		}
	}
	// 9 bets of 10 staked; only the straight pays 360.
	if want := decimal.NewFromInt(90); !totals.TotalStaked.Equal(want) {
		t.Errorf("expected total staked %s, got %s", want, totals.TotalStaked)
	}
	if want := decimal.NewFromInt(360); !totals.TotalPaid.Equal(want) {
		t.Errorf("expected total paid %s, got %s", want, totals.TotalPaid)
	}
}

func TestSettleMixedBatchTotals(t *testing.T) {
	bets := []Bet{
		bet(BetStraight, []int{17}, 5),
		bet(BetBlack, BlackNumbers, 20),
		bet(BetDozen, Dozens[1], 10),
	}
	// 17 is black and in the second dozen.
	outcomes, totals := Settle(bets, 17)

	if !outcomes[0].Won || !outcomes[1].Won || !outcomes[2].Won {
		t.Fatal("all three bets cover 17 and must win")
	}
	// 5*36 + 20*2 + 10*3 = 250.
	if want := decimal.NewFromInt(250); !totals.TotalPaid.Equal(want) {
		t.Errorf("expected total paid %s, got %s", want, totals.TotalPaid)
	}
	if want := decimal.NewFromInt(215); !totals.NetProfit.Equal(want) {
		t.Errorf("expected net profit %s, got %s", want, totals.NetProfit)
	}
}

func TestSettleIsPure(t *testing.T) {
	bets := []Bet{bet(BetStraight, []int{17}, 10), bet(BetRed, RedNumbers, 5)}
	_, first := Settle(bets, 17)
	_, second := Settle(bets, 17)

	if !first.TotalPaid.Equal(second.TotalPaid) || !first.NetProfit.Equal(second.NetProfit) {
		t.Error("settlement must be deterministic for identical inputs")
	}
}
