package sim

import "math/rand"

// State is the whole simulation at one tick boundary.
type State struct {
	Snake         []Point   // index 0 = head
	Food          []Point
	Direction     Direction // grid heading; last cardinal heading in continuous mode
	Velocity      Vec       // continuous mode, px per tick
	Score         int
	Level         int
	Tick          int
	PendingGrowth int // grid mode: ticks left during which the tail is kept
	IsGameOver    bool
	IsPaused      bool
}

// Head returns the head segment.
func (s State) Head() Point {
	return s.Snake[0]
}

// Len returns the segment count.
func (s State) Len() int {
	return len(s.Snake)
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	c := s
	c.Snake = append([]Point(nil), s.Snake...)
	c.Food = append([]Point(nil), s.Food...)
	return c
}

// Input is what the input source holds during one tick.
type Input struct {
	Direction Direction    // latest queued direction change, None if none
	Held      DirectionSet // continuous mode: keys held this tick
	Boost     bool         // continuous mode: accelerate toward MaxSpeed
	Brake     bool         // continuous mode: decelerate toward MinSpeed
}

// EventKind enumerates the input-source events.
type EventKind int

const (
	EventDirection EventKind = iota
	EventTogglePause
	EventRestart
)

// Event is one discrete input from the input source.
type Event struct {
	Kind      EventKind
	Direction Direction
}

// NewState returns the fixed starting snake with freshly placed food.
// The snake sits at the board center heading right, tail trailing left.
func NewState(cfg Config, rng *rand.Rand) State {
	st := State{
		Snake:     make([]Point, cfg.BaseLength),
		Direction: Right,
		Level:     1,
	}
	switch cfg.Model {
	case Continuous:
		cx, cy := cfg.Width/2, cfg.Height/2
		for i := range st.Snake {
			st.Snake[i] = Point{X: cx - float64(i)*cfg.SegmentSpacing, Y: cy}
		}
		st.Velocity = Vec{X: cfg.Speed}
	default:
		cx, cy := float64(cfg.Columns/2), float64(cfg.Rows/2)
		for i := range st.Snake {
			st.Snake[i] = Point{X: cx - float64(i), Y: cy}
		}
	}

	sp := newSpace(cfg)
	st.Food = make([]Point, 0, cfg.FoodCount)
	for len(st.Food) < cfg.FoodCount {
		st.Food = append(st.Food, placeFood(cfg, sp, st.Snake, st.Food, rng))
	}
	return st
}
