package game

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/pkg/provablyfair"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(TableConfig{
		InitialBalance: decimal.NewFromInt(1000),
		Limits:         testLimits(),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return table
}

func TestTableSpinUpdatesLedgerExactly(t *testing.T) {
	table := testTable(t)
	before := table.Balance()

	bets := []Bet{
		bet(BetStraight, []int{17}, 10),
		bet(BetRed, RedNumbers, 20),
	}
	result, err := table.Spin(bets)
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	want := before.Sub(result.TotalStaked).Add(result.TotalPaid)
	if !result.NewBalance.Equal(want) {
		t.Errorf("expected new balance %s, got %s", want, result.NewBalance)
	}
	if !table.Balance().Equal(result.NewBalance) {
		t.Errorf("table balance %s does not match result %s", table.Balance(), result.NewBalance)
	}
	if result.WinningNumber < 0 || result.WinningNumber > 36 {
		t.Errorf("winning number %d outside 0-36", result.WinningNumber)
	}
	if result.WinningColor != ColorOf(result.WinningNumber) {
		t.Errorf("winning color %s does not match number %d", result.WinningColor, result.WinningNumber)
	}
	if len(result.Outcomes) != len(bets) {
		t.Errorf("expected %d outcomes, got %d", len(bets), len(result.Outcomes))
	}
}

func TestTableValidationFailureLeavesLedgerUntouched(t *testing.T) {
	table := testTable(t)
	before := table.Balance()

	_, err := table.Spin([]Bet{bet(BetSplit, []int{1, 5}, 10)})
	if errors.GetCode(err) != errors.CodeInvalidBet {
		t.Fatalf("expected %s, got %v", errors.CodeInvalidBet, err)
	}
	if !table.Balance().Equal(before) {
		t.Errorf("balance changed from %s to %s on a rejected round", before, table.Balance())
	}
	if got := table.History(HistoryCap); len(got) != 0 {
		t.Errorf("rejected round must not be recorded, history has %d entries", len(got))
	}
}

func TestTableInsufficientBalance(t *testing.T) {
	table, err := NewTable(TableConfig{
		InitialBalance: decimal.NewFromInt(5),
		Limits:         testLimits(),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	_, err = table.Spin([]Bet{bet(BetStraight, []int{17}, 10)})
	if errors.GetCode(err) != errors.CodeInsufficientBalance {
		t.Errorf("expected %s, got %v", errors.CodeInsufficientBalance, err)
	}
}

func TestTableHistoryOrderAndCap(t *testing.T) {
	table, err := NewTable(TableConfig{
		InitialBalance: decimal.NewFromInt(1000000),
		Limits:         testLimits(),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	rounds := HistoryCap + 10
	var lastNumber int
	for i := 0; i < rounds; i++ {
		result, err := table.Spin([]Bet{bet(BetStraight, []int{17}, 1)})
		if err != nil {
			t.Fatalf("spin %d failed: %v", i, err)
		}
		lastNumber = result.WinningNumber
	}

	history := table.History(HistoryCap)
	if len(history) != HistoryCap {
		t.Fatalf("expected history capped at %d, got %d", HistoryCap, len(history))
	}
	if history[0].WinningNumber != lastNumber {
		t.Errorf("expected most recent round first, got %d want %d", history[0].WinningNumber, lastNumber)
	}

	limited := table.History(5)
	if len(limited) != 5 {
		t.Errorf("expected 5 records, got %d", len(limited))
	}
	if limited[0].WinningNumber != lastNumber {
		t.Errorf("limited history must still start from the newest round")
	}

	// Out-of-range limits clamp instead of failing.
	if got := table.History(0); len(got) != 1 {
		t.Errorf("limit 0 must clamp to 1, got %d records", len(got))
	}
	if got := table.History(HistoryCap + 500); len(got) != HistoryCap {
		t.Errorf("oversized limit must clamp to %d, got %d", HistoryCap, len(got))
	}
}

func TestTableReset(t *testing.T) {
	table := testTable(t)
	commitment := table.CommitmentHash()

	if _, err := table.Spin([]Bet{bet(BetStraight, []int{17}, 10)}); err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if _, ok := table.LastProof(); !ok {
		t.Fatal("expected a proof after the first round")
	}

	balance, err := table.Reset()
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected balance restored to 1000, got %s", balance)
	}
	if len(table.History(HistoryCap)) != 0 {
		t.Error("expected history cleared on reset")
	}
	if table.CommitmentHash() == commitment {
		t.Error("expected a fresh commitment after reset")
	}
	if _, ok := table.LastProof(); ok {
		t.Error("expected last proof cleared on reset")
	}
}

func TestTableProofVerifies(t *testing.T) {
	table := testTable(t)
	commitment := table.CommitmentHash()

	result, err := table.Spin([]Bet{bet(BetStraight, []int{17}, 10)})
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	proof, ok := table.LastProof()
	if !ok {
		t.Fatal("expected a proof after the round")
	}
	if proof.ServerSeedHash != commitment {
		t.Errorf("proof hash %s does not match the pre-round commitment %s", proof.ServerSeedHash, commitment)
	}
	if proof.WinningNumber != result.WinningNumber {
		t.Errorf("proof number %d does not match result %d", proof.WinningNumber, result.WinningNumber)
	}
	if err := provablyfair.Verify(proof); err != nil {
		t.Errorf("proof failed verification: %v", err)
	}
}

// Rounds must serialize: with many rounds in flight, the final balance
// equals initial minus every stake plus every payout, exactly. Run
// with -race.
func TestTableConcurrentSpinsConserveBalance(t *testing.T) {
	initial := decimal.NewFromInt(1000000)
	table, err := NewTable(TableConfig{
		InitialBalance: initial,
		Limits:         testLimits(),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	const (
		workers         = 8
		roundsPerWorker = 25
	)

	results := make(chan *RoundResult, workers*roundsPerWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < roundsPerWorker; i++ {
				result, err := table.Spin([]Bet{
					bet(BetStraight, []int{17}, 1),
					bet(BetRed, RedNumbers, 2),
				})
				if err != nil {
					t.Errorf("spin failed: %v", err)
					return
				}
				results <- result
			}
		}()
	}

	// Concurrent readers: no data races, history never exceeds its cap.
	stop := make(chan struct{})
	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
					table.Balance()
					if h := table.History(HistoryCap); len(h) > HistoryCap {
						t.Errorf("history grew past %d entries", HistoryCap)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readers.Wait()
	close(results)

	staked, paid := decimal.Zero, decimal.Zero
	count := 0
	for result := range results {
		staked = staked.Add(result.TotalStaked)
		paid = paid.Add(result.TotalPaid)
		count++
	}
	if count != workers*roundsPerWorker {
		t.Fatalf("expected %d settled rounds, got %d", workers*roundsPerWorker, count)
	}

	want := initial.Sub(staked).Add(paid)
	if !table.Balance().Equal(want) {
		t.Errorf("final balance %s, want %s (initial %s - staked %s + paid %s)",
			table.Balance(), want, initial, staked, paid)
	}
}

func TestTableSnapshotRoundTrip(t *testing.T) {
	table := testTable(t)
	for i := 0; i < 3; i++ {
		if _, err := table.Spin([]Bet{bet(BetStraight, []int{17}, 10)}); err != nil {
			t.Fatalf("spin failed: %v", err)
		}
	}

	snap := table.Snapshot()

	restored := testTable(t)
	restored.Restore(snap)

	if !restored.Balance().Equal(table.Balance()) {
		t.Errorf("restored balance %s, want %s", restored.Balance(), table.Balance())
	}
	if restored.CommitmentHash() != table.CommitmentHash() {
		t.Error("restored commitment must match the snapshotted one")
	}
	got := restored.History(HistoryCap)
	want := table.History(HistoryCap)
	if len(got) != len(want) {
		t.Fatalf("restored history has %d entries, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].WinningNumber != want[i].WinningNumber {
			t.Errorf("history entry %d: number %d, want %d", i, got[i].WinningNumber, want[i].WinningNumber)
		}
	}

	// The restored table continues the nonce sequence, not restarts it.
	a, _ := table.Spin([]Bet{bet(BetStraight, []int{17}, 10)})
	b, _ := restored.Spin([]Bet{bet(BetStraight, []int{17}, 10)})
	if a.WinningNumber != b.WinningNumber {
		t.Errorf("same state must draw the same number, got %d and %d", a.WinningNumber, b.WinningNumber)
	}
}
