package sim

import (
	"errors"
	"sync"
	"testing"
)

func newGridSim(t *testing.T, mutate func(*Config), opts ...Option) *Simulation {
	t.Helper()
	cfg := DefaultGridConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg, append([]Option{WithSeed(7)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultContinuousConfig()
	cfg.Smoothing = 2
	if _, err := New(cfg); !errors.Is(err, ErrSmoothing) {
		t.Fatalf("New error = %v, want ErrSmoothing", err)
	}
}

func TestDirectionAppliesOnNextTick(t *testing.T) {
	s := newGridSim(t, nil)

	s.SetDirection(Up)
	if got := s.Snapshot().Direction; got != Right {
		t.Fatalf("direction changed before the tick: %v", got)
	}
	st := s.Tick(Input{})
	if st.Direction != Up {
		t.Errorf("direction = %v, want UP", st.Direction)
	}
	if st.Head() != (Point{X: 20, Y: 19}) {
		t.Errorf("head = %v, want {20 19}", st.Head())
	}
}

func TestReversalIsDropped(t *testing.T) {
	s := newGridSim(t, nil)

	s.SetDirection(Left)
	st := s.Tick(Input{})
	if st.Direction != Right || st.IsGameOver {
		t.Fatalf("reversal applied: direction %v, game over %v", st.Direction, st.IsGameOver)
	}
	if st.Head() != (Point{X: 21, Y: 20}) {
		t.Errorf("head = %v, want {21 20}", st.Head())
	}

	// A reversal must not clobber an earlier valid turn.
	s.SetDirection(Down)
	s.SetDirection(Left)
	if st = s.Tick(Input{}); st.Direction != Down {
		t.Errorf("direction = %v, want DOWN", st.Direction)
	}
}

func TestPauseFreezesAndKeepsQueuedTurn(t *testing.T) {
	s := newGridSim(t, nil)
	s.TogglePause()
	s.SetDirection(Up)
	paused := s.Tick(Input{})
	if !paused.IsPaused {
		t.Fatal("not paused")
	}
	for i := 0; i < 5; i++ {
		st := s.Tick(Input{})
		if st.Tick != paused.Tick || st.Head() != paused.Head() {
			t.Fatalf("paused tick advanced the state")
		}
	}

	s.TogglePause()
	st := s.Tick(Input{})
	if st.IsPaused || st.Direction != Up || st.Tick != paused.Tick+1 {
		t.Errorf("resume: paused %v, direction %v, tick %d", st.IsPaused, st.Direction, st.Tick)
	}
}

func TestDoubleToggleCancels(t *testing.T) {
	s := newGridSim(t, nil)
	s.TogglePause()
	s.TogglePause()
	if st := s.Tick(Input{}); st.IsPaused || st.Tick != 1 {
		t.Errorf("paused %v, tick %d", st.IsPaused, st.Tick)
	}
}

func TestGameOverHookAndRestart(t *testing.T) {
	var calls, final int
	s := newGridSim(t, func(c *Config) { c.WrapEdges = false }, WithGameOverHook(func(score int) {
		calls++
		final = score
	}))

	var st State
	for i := 0; i < 100 && !st.IsGameOver; i++ {
		st = s.Tick(Input{})
	}
	if !st.IsGameOver {
		t.Fatal("snake never hit the wall")
	}
	frozen := st
	for i := 0; i < 5; i++ {
		st = s.Tick(Input{Direction: Up})
	}
	if st.Head() != frozen.Head() || st.Score != frozen.Score || st.Food[0] != frozen.Food[0] {
		t.Error("finished game kept changing")
	}
	if calls != 1 || final != frozen.Score {
		t.Errorf("hook calls = %d score = %d, want 1 call with %d", calls, final, frozen.Score)
	}

	s.Restart()
	st = s.Tick(Input{})
	if st.IsGameOver || st.Score != 0 || st.Len() != s.Config().BaseLength {
		t.Fatalf("restart state: %+v", st)
	}
	if st.Head() != (Point{X: 20, Y: 20}) || st.Direction != Right {
		t.Errorf("restart head %v heading %v", st.Head(), st.Direction)
	}
}

func TestApplyDispatchesEvents(t *testing.T) {
	s := newGridSim(t, nil)
	s.Apply(Event{Kind: EventDirection, Direction: Down})
	s.Apply(Event{Kind: EventTogglePause})
	st := s.Tick(Input{})
	if !st.IsPaused {
		t.Error("pause event ignored")
	}
	s.Apply(Event{Kind: EventRestart})
	if st = s.Tick(Input{}); st.IsPaused || st.Tick != 0 {
		t.Errorf("restart event ignored: %+v", st)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newGridSim(t, nil)
	snap := s.Snapshot()
	snap.Snake[0] = Point{X: -5, Y: -5}
	snap.Food[0] = Point{X: -5, Y: -5}
	if got := s.Snapshot(); got.Head() == snap.Snake[0] || got.Food[0] == snap.Food[0] {
		t.Error("snapshot aliases simulation state")
	}
}

func TestConcurrentInputWhileTicking(t *testing.T) {
	s := newGridSim(t, nil)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			dirs := []Direction{Up, Left, Down, Right}
			for i := 0; i < 200; i++ {
				s.SetDirection(dirs[(g+i)%len(dirs)])
				if i%50 == 0 {
					s.TogglePause()
				}
			}
		}(g)
	}
	for i := 0; i < 200; i++ {
		st := s.Tick(Input{})
		if st.Len() < s.Config().BaseLength {
			t.Fatalf("len %d below base", st.Len())
		}
	}
	wg.Wait()
}

func TestContinuousSimulationRuns(t *testing.T) {
	s, err := New(DefaultContinuousConfig(), WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	start := s.Snapshot().Head()
	st := s.Tick(Input{Held: Held(Down)})
	if st.Head().Y <= start.Y {
		t.Errorf("held DOWN did not move the head down: %v -> %v", start, st.Head())
	}
	if st.Direction != Down {
		t.Errorf("direction = %v, want DOWN", st.Direction)
	}
}
