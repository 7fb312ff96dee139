package storage

import (
	"sync"
	"testing"
	"time"
)

func openTest(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerSaveAndTopRuns(t *testing.T) {
	l := openTest(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := l.SaveRun(Run{GameID: "jumper", Player: "local", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := l.SaveRun(Run{GameID: "jumper_classic", Score: 500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := l.TopRuns("jumper", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
	if runs[0].Player != "local" {
		t.Errorf("Player = %q, expected local", runs[0].Player)
	}
	if runs[0].EndedAt.IsZero() {
		t.Error("EndedAt should be stamped when left zero")
	}

	classic, err := l.TopRuns("jumper_classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic run, got %d", len(classic))
	}
}

func TestLedgerTopRunsLimitAndTies(t *testing.T) {
	l := openTest(t)

	for i := 0; i < 5; i++ {
		l.SaveRun(Run{GameID: "jumper", Score: (i + 1) * 100})
	}
	later, _ := l.SaveRun(Run{GameID: "jumper", Score: 500, Seed: 7})

	runs, err := l.TopRuns("jumper", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 500 || runs[2].Score != 400 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
	// Earlier run wins the tie
	if runs[1].ID != later || runs[1].Seed != 7 {
		t.Errorf("tie should list the later run second, got %+v", runs[1])
	}

	all, _ := l.TopRuns("jumper", 0)
	if len(all) != 6 {
		t.Errorf("default limit should cover all 6 runs, got %d", len(all))
	}
}

func TestLedgerRoundTripFields(t *testing.T) {
	l := openTest(t)

	ended := time.UnixMilli(1_700_000_000_123)
	in := Run{
		GameID:   "jumper",
		Player:   "alice",
		Seed:     -42,
		Score:    77,
		Coins:    5,
		Duration: 93*time.Second + 250*time.Millisecond,
		EndedAt:  ended,
	}
	id, err := l.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, _ := l.TopRuns("jumper", 1)
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	in.ID = id
	if got.ID != in.ID || got.Player != in.Player || got.Seed != in.Seed ||
		got.Score != in.Score || got.Coins != in.Coins || got.Duration != in.Duration ||
		!got.EndedAt.Equal(in.EndedAt) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}
}

func TestLedgerBestAndStats(t *testing.T) {
	l := openTest(t)

	best, err := l.Best("jumper")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best of 0 with no runs, got %d", best)
	}

	empty, err := l.Stats("jumper")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	l.SaveRun(Run{GameID: "jumper", Score: 10, Coins: 1, Duration: time.Second})
	l.SaveRun(Run{GameID: "jumper", Score: 30, Coins: 2, Duration: 5 * time.Second})
	l.SaveRun(Run{GameID: "jumper", Score: 20, Coins: 0, Duration: 2 * time.Second})

	best, _ = l.Best("jumper")
	if best != 30 {
		t.Errorf("Expected best of 30, got %d", best)
	}

	s, err := l.Stats("jumper")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if s.Runs != 3 || s.Best != 30 || s.TotalCoins != 3 || s.AvgScore != 20 {
		t.Errorf("stats = %+v", s)
	}
	if s.Longest != 5*time.Second {
		t.Errorf("Longest = %v, expected 5s", s.Longest)
	}
	if s.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestLedgerClear(t *testing.T) {
	l := openTest(t)

	l.SaveRun(Run{GameID: "jumper", Score: 100})
	l.SaveRun(Run{GameID: "jumper_classic", Score: 300})

	if err := l.Clear("jumper"); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	if runs, _ := l.TopRuns("jumper", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if runs, _ := l.TopRuns("jumper_classic", 10); len(runs) != 1 {
		t.Error("other games should not be affected by Clear")
	}
}

func TestLedgersAreIndependent(t *testing.T) {
	a := openTest(t)
	b := openTest(t)

	a.SaveRun(Run{GameID: "jumper", Score: 100})

	if best, _ := b.Best("jumper"); best != 0 {
		t.Errorf("separate ledgers should not share runs, got best %d", best)
	}
}

func TestLedgerClosed(t *testing.T) {
	l, err := OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close() should be a no-op, got %v", err)
	}

	if _, err := l.SaveRun(Run{GameID: "jumper"}); err != ErrClosed {
		t.Errorf("SaveRun after Close = %v, expected ErrClosed", err)
	}
	if _, err := l.TopRuns("jumper", 1); err != ErrClosed {
		t.Errorf("TopRuns after Close = %v, expected ErrClosed", err)
	}

	var nilLedger *Ledger
	if _, err := nilLedger.Best("jumper"); err != ErrClosed {
		t.Errorf("nil ledger Best = %v, expected ErrClosed", err)
	}
}

func TestLedgerConcurrentSessions(t *testing.T) {
	l := openTest(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if _, err := l.SaveRun(Run{GameID: "jumper", Score: i*10 + j}); err != nil {
					t.Errorf("SaveRun() failed: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	s, err := l.Stats("jumper")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if s.Runs != 80 || s.Best != 79 {
		t.Errorf("stats after concurrent saves = %+v", s)
	}
}
