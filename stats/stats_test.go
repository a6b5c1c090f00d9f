package stats

import (
	"fmt"
	"sync"
	"testing"
)

func TestRecordAggregates(t *testing.T) {
	tr := NewTracker()
	for _, score := range []int{30, 0, 120, 50} {
		tr.Record("ana", score)
	}

	got, ok := tr.Get("ana")
	if !ok {
		t.Fatal("no stats for ana")
	}
	want := Stats{Player: "ana", GamesPlayed: 3, HighScore: 120, TotalScore: 200}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestZeroScoreIsNotAGame(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.Record("bob", 0); ok {
		t.Error("zero score reported as recorded")
	}
	if _, ok := tr.Get("bob"); ok {
		t.Error("zero score created an entry")
	}
}

func TestSnapshotOrder(t *testing.T) {
	tr := NewTracker()
	tr.Record("c", 10)
	tr.Record("a", 40)
	tr.Record("b", 40)

	snap := tr.Snapshot()
	order := make([]string, len(snap))
	for i, s := range snap {
		order[i] = s.Player
	}
	if fmt.Sprint(order) != "[a b c]" {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestConcurrentRecord(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 100; i++ {
				tr.Record("p", i)
				tr.Get("p")
			}
		}()
	}
	wg.Wait()

	got, _ := tr.Get("p")
	if got.GamesPlayed != 800 || got.HighScore != 100 || got.TotalScore != 8*5050 {
		t.Errorf("Get = %+v", got)
	}
}
