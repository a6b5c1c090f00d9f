package sim

import (
	"fmt"
	"strings"
)

// Direction is a cardinal input or grid heading.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = [...]string{"NONE", "UP", "DOWN", "LEFT", "RIGHT"}

func (d Direction) String() string {
	if d < None || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts UP, DOWN, LEFT or RIGHT in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return Up, true
	case "DOWN":
		return Down, true
	case "LEFT":
		return Left, true
	case "RIGHT":
		return Right, true
	}
	return None, false
}

// MarshalText encodes the direction as its upper-case name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name. Empty text decodes to None.
func (d *Direction) UnmarshalText(text []byte) error {
	if len(text) == 0 || strings.EqualFold(string(text), "NONE") {
		*d = None
		return nil
	}
	v, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("sim: unknown direction %q", text)
	}
	*d = v
	return nil
}

// Opposite returns the reversed direction. None stays None.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

// Delta is the unit step for d in screen coordinates.
func (d Direction) Delta() Vec {
	switch d {
	case Up:
		return Vec{Y: -1}
	case Down:
		return Vec{Y: 1}
	case Left:
		return Vec{X: -1}
	case Right:
		return Vec{X: 1}
	}
	return Vec{}
}

// cardinal returns the direction v points along, or None for diagonals and zero.
func cardinal(v Vec) Direction {
	switch {
	case v.Y == 0 && v.X > 0:
		return Right
	case v.Y == 0 && v.X < 0:
		return Left
	case v.X == 0 && v.Y > 0:
		return Down
	case v.X == 0 && v.Y < 0:
		return Up
	}
	return None
}

// DirectionSet is the set of directions currently held down.
type DirectionSet uint8

// Held builds a set from directions.
func Held(dirs ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range dirs {
		s = s.With(d)
	}
	return s
}

// With returns s plus d.
func (s DirectionSet) With(d Direction) DirectionSet {
	if d == None {
		return s
	}
	return s | 1<<uint(d)
}

// Without returns s minus d.
func (s DirectionSet) Without(d Direction) DirectionSet {
	return s &^ (1 << uint(d))
}

// Has reports whether d is held.
func (s DirectionSet) Has(d Direction) bool {
	return d != None && s&(1<<uint(d)) != 0
}

// Resultant sums the held directions. Opposing keys cancel.
func (s DirectionSet) Resultant() Vec {
	var v Vec
	for d := Up; d <= Right; d++ {
		if s.Has(d) {
			dv := d.Delta()
			v.X += dv.X
			v.Y += dv.Y
		}
	}
	return v
}
