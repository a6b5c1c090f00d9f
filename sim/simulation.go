package sim

import (
	"math/rand"
	"sync"
	"time"
)

// pendingInput collects requests that arrive between ticks.
type pendingInput struct {
	direction   Direction
	togglePause bool
	restart     bool
}

// Simulation owns one State and advances it with Step. SetDirection,
// TogglePause, Restart and Apply only queue requests and are safe to call
// from any goroutine; the queue is applied atomically at the start of the
// next Tick. Tick itself must have a single caller.
type Simulation struct {
	cfg        Config
	rng        *rand.Rand
	state      State
	onGameOver func(score int)

	mu      sync.Mutex // protects pending and heading
	pending pendingInput
	heading Direction // heading as of the last tick, for reversal checks
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand sets the food placement source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// WithSeed seeds a private food placement source.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithGameOverHook registers fn to run once per terminal transition with the
// final score. fn runs inside Tick and must not block.
func WithGameOverHook(fn func(score int)) Option {
	return func(s *Simulation) { s.onGameOver = fn }
}

// New validates cfg and returns a simulation in its starting state.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.state = NewState(cfg, s.rng)
	s.heading = s.state.Direction
	return s, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// SetDirection queues a heading change for the next tick. The latest call
// wins. In grid mode a reversal of the current heading is dropped here, so it
// cannot replace an earlier valid turn; instant continuous steering drops
// exact reversals when the turn is applied.
func (s *Simulation) SetDirection(d Direction) {
	if d == None {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Model == Grid && d == s.heading.Opposite() {
		return
	}
	s.pending.direction = d
}

// TogglePause queues a pause flip. Two toggles before a tick cancel out.
func (s *Simulation) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.togglePause = !s.pending.togglePause
}

// Restart queues a reset to the starting state. It supersedes any other
// queued request and is honoured after game over.
func (s *Simulation) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.restart = true
}

// Apply dispatches an input-source event.
func (s *Simulation) Apply(ev Event) {
	switch ev.Kind {
	case EventDirection:
		s.SetDirection(ev.Direction)
	case EventTogglePause:
		s.TogglePause()
	case EventRestart:
		s.Restart()
	}
}

// Tick applies the queued requests, advances one step with in, and returns
// a snapshot of the new state. A queued direction overrides in.Direction.
// A tick that applies a restart returns the fresh state without advancing.
func (s *Simulation) Tick(in Input) State {
	s.mu.Lock()
	p := s.pending
	s.pending = pendingInput{}
	s.mu.Unlock()

	if p.restart {
		s.state = NewState(s.cfg, s.rng)
		s.setHeading(s.state.Direction)
		return s.state.Clone()
	}
	if p.togglePause {
		s.state.IsPaused = !s.state.IsPaused
	}
	if p.direction != None {
		in.Direction = p.direction
	}

	if s.state.IsPaused && p.direction != None {
		// Keep the turn for the first unpaused tick unless a newer one arrived.
		s.mu.Lock()
		if s.pending.direction == None {
			s.pending.direction = p.direction
		}
		s.mu.Unlock()
	}

	wasOver := s.state.IsGameOver
	s.state = Step(s.cfg, s.state, in, s.rng)
	s.setHeading(s.state.Direction)

	if !wasOver && s.state.IsGameOver && s.onGameOver != nil {
		s.onGameOver(s.state.Score)
	}
	return s.state.Clone()
}

func (s *Simulation) setHeading(d Direction) {
	s.mu.Lock()
	s.heading = d
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state. It must not be called
// concurrently with Tick.
func (s *Simulation) Snapshot() State {
	return s.state.Clone()
}
