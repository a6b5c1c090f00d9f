package sim

import "time"

// Pace maps a level to the wall-clock period between ticks. The core never
// reads it; harnesses use it to drive Tick.
type Pace struct {
	Base    time.Duration // period at level 1
	Speedup time.Duration // removed per level above 1
	Min     time.Duration // floor
}

// DefaultPace starts at 150ms and speeds up by 20ms per level down to 50ms.
func DefaultPace() Pace {
	return Pace{Base: 150 * time.Millisecond, Speedup: 20 * time.Millisecond, Min: 50 * time.Millisecond}
}

// Interval returns the tick period at level.
func (p Pace) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := p.Base - time.Duration(level-1)*p.Speedup
	if d < p.Min {
		d = p.Min
	}
	return d
}
