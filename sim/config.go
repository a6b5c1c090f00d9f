// Package sim is the local snake simulation: snake geometry, heading, food,
// score and the terminal/pause flags, advanced one fixed tick at a time.
package sim

import (
	"errors"
	"fmt"
	"strings"
)

// MovementModel selects how the head advances each tick.
type MovementModel int

const (
	// Grid moves the head one cell per tick.
	Grid MovementModel = iota
	// Continuous moves the head by its velocity in sub-pixel space.
	Continuous
)

func (m MovementModel) String() string {
	switch m {
	case Grid:
		return "grid"
	case Continuous:
		return "continuous"
	}
	return fmt.Sprintf("MovementModel(%d)", int(m))
}

// ParseMovementModel accepts "grid" or "continuous" in any case.
func ParseMovementModel(s string) (MovementModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid":
		return Grid, nil
	case "continuous":
		return Continuous, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// SteeringMode selects how continuous-mode input changes the heading.
type SteeringMode int

const (
	// SteerInstant swaps the heading to the requested direction in one tick.
	SteerInstant SteeringMode = iota
	// SteerAngular rotates toward the requested direction by a bounded angle per tick.
	SteerAngular
)

func (m SteeringMode) String() string {
	if m == SteerAngular {
		return "angular"
	}
	return "instant"
}

// ParseSteeringMode accepts "instant" or "angular" in any case.
func ParseSteeringMode(s string) (SteeringMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instant", "":
		return SteerInstant, nil
	case "angular":
		return SteerAngular, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSteering, s)
}

// Defaults taken from the single-player prototypes and the reference server.
const (
	// Grid board, in cells
	DefaultColumns = 40
	DefaultRows    = 40

	// Continuous board, in px
	DefaultWidth  = 600.0
	DefaultHeight = 600.0

	DefaultBaseLength  = 5
	DefaultScoreReward = 10
	DefaultFoodCount   = 1

	// Grid growth is counted in ticks the tail is kept; continuous growth in tail duplicates
	DefaultGridGrowth       = 1
	DefaultContinuousGrowth = 3

	DefaultFoodMargin           = 20.0 // px, continuous only
	DefaultMaxPlacementAttempts = 64

	// Speeds are px per tick
	DefaultSpeed        = 3.0
	DefaultMinSpeed     = 1.0
	DefaultMaxSpeed     = 6.0
	DefaultAcceleration = 0.25

	// Angular steering: radians per tick, reduced by TurnScale per segment
	DefaultTurnRate  = 0.18
	DefaultTurnScale = 0.0

	DefaultSegmentSpacing  = 8.0
	DefaultSmoothing       = 1.0
	DefaultWrapMargin      = 15.0
	DefaultEatRadius       = 20.0 // segment size + 5
	DefaultCollisionRadius = 15.0
	DefaultExclusionIndex  = 3
	DefaultScoreDivisor    = 2

	// Level rises every LevelScoreStep points up to MaxLevel
	DefaultLevelScoreStep = 50
	DefaultMaxLevel       = 5
)

var (
	ErrUnknownModel    = errors.New("sim: unknown movement model")
	ErrUnknownSteering = errors.New("sim: unknown steering mode")
	ErrBoardSize       = errors.New("sim: invalid board size")
	ErrSnakeLength     = errors.New("sim: invalid snake length")
	ErrSpeedRange      = errors.New("sim: invalid speed range")
	ErrSmoothing       = errors.New("sim: smoothing must be in (0,1]")
	ErrParameter       = errors.New("sim: invalid parameter")
)

// Config parameterizes one simulation instance. Fields that only apply to
// the other movement model are ignored.
type Config struct {
	Model     MovementModel
	WrapEdges bool
	Steering  SteeringMode

	// Grid board in cells
	Columns int
	Rows    int

	// Continuous board in px
	Width  float64
	Height float64

	BaseLength  int // starting length and floor of the length cap
	ScoreReward int
	GrowthBatch int
	FoodCount   int

	FoodMargin           float64 // cells in grid mode, px in continuous mode
	AvoidSnake           bool    // keep new food off the snake and other food
	MaxPlacementAttempts int

	Speed        float64
	MinSpeed     float64
	MaxSpeed     float64
	Acceleration float64
	TurnRate     float64
	TurnScale    float64

	SegmentSpacing float64
	Smoothing      float64 // fraction of the spacing excess closed per tick, in (0,1]
	WrapMargin     float64

	EatRadius       float64
	CollisionRadius float64
	ExclusionIndex  int // self collision ignores segments before this index
	ScoreDivisor    int // length cap is BaseLength + Score/ScoreDivisor; 0 disables it

	LevelScoreStep int
	MaxLevel       int
}

// DefaultGridConfig returns the classic wrapping grid game on a 40x40 board.
func DefaultGridConfig() Config {
	return Config{
		Model:                Grid,
		WrapEdges:            true,
		Columns:              DefaultColumns,
		Rows:                 DefaultRows,
		BaseLength:           DefaultBaseLength,
		ScoreReward:          DefaultScoreReward,
		GrowthBatch:          DefaultGridGrowth,
		FoodCount:            DefaultFoodCount,
		AvoidSnake:           true,
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
		LevelScoreStep:       DefaultLevelScoreStep,
		MaxLevel:             DefaultMaxLevel,
	}
}

// DefaultContinuousConfig returns the smooth-follow variant with hard walls.
func DefaultContinuousConfig() Config {
	return Config{
		Model:                Continuous,
		Steering:             SteerInstant,
		Width:                DefaultWidth,
		Height:               DefaultHeight,
		BaseLength:           DefaultBaseLength,
		ScoreReward:          DefaultScoreReward,
		GrowthBatch:          DefaultContinuousGrowth,
		FoodCount:            DefaultFoodCount,
		FoodMargin:           DefaultFoodMargin,
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
		Speed:                DefaultSpeed,
		MinSpeed:             DefaultMinSpeed,
		MaxSpeed:             DefaultMaxSpeed,
		Acceleration:         DefaultAcceleration,
		TurnRate:             DefaultTurnRate,
		TurnScale:            DefaultTurnScale,
		SegmentSpacing:       DefaultSegmentSpacing,
		Smoothing:            DefaultSmoothing,
		WrapMargin:           DefaultWrapMargin,
		EatRadius:            DefaultEatRadius,
		CollisionRadius:      DefaultCollisionRadius,
		ExclusionIndex:       DefaultExclusionIndex,
		ScoreDivisor:         DefaultScoreDivisor,
		LevelScoreStep:       DefaultLevelScoreStep,
		MaxLevel:             DefaultMaxLevel,
	}
}

// Validate reports the first inconsistency in the config.
func (c Config) Validate() error {
	if c.BaseLength < 1 {
		return fmt.Errorf("%w: base length %d", ErrSnakeLength, c.BaseLength)
	}
	if c.ScoreReward < 0 || c.GrowthBatch < 0 || c.ScoreDivisor < 0 || c.LevelScoreStep < 0 {
		return fmt.Errorf("%w: reward, growth, divisor and level step must not be negative", ErrParameter)
	}
	if c.FoodCount < 1 {
		return fmt.Errorf("%w: food count %d", ErrParameter, c.FoodCount)
	}
	if c.MaxPlacementAttempts < 0 || c.FoodMargin < 0 {
		return fmt.Errorf("%w: placement attempts and food margin must not be negative", ErrParameter)
	}
	if c.MaxLevel < 1 {
		return fmt.Errorf("%w: max level %d", ErrParameter, c.MaxLevel)
	}

	switch c.Model {
	case Grid:
		if c.Columns < 1 || c.Rows < 1 {
			return fmt.Errorf("%w: %dx%d cells", ErrBoardSize, c.Columns, c.Rows)
		}
		// The starting snake is laid out leftwards from the center column.
		if c.BaseLength-1 > c.Columns/2 {
			return fmt.Errorf("%w: %d cells do not fit a %d column board", ErrSnakeLength, c.BaseLength, c.Columns)
		}
		if c.FoodCount > c.Columns*c.Rows-c.BaseLength {
			return fmt.Errorf("%w: %d food items on %d free cells", ErrParameter, c.FoodCount, c.Columns*c.Rows-c.BaseLength)
		}
	case Continuous:
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("%w: %gx%g px", ErrBoardSize, c.Width, c.Height)
		}
		if c.MinSpeed <= 0 || c.MinSpeed > c.MaxSpeed || c.Speed < c.MinSpeed || c.Speed > c.MaxSpeed {
			return fmt.Errorf("%w: speed %g outside [%g, %g]", ErrSpeedRange, c.Speed, c.MinSpeed, c.MaxSpeed)
		}
		if c.Smoothing <= 0 || c.Smoothing > 1 {
			return fmt.Errorf("%w: got %g", ErrSmoothing, c.Smoothing)
		}
		if c.SegmentSpacing <= 0 || c.EatRadius <= 0 || c.CollisionRadius <= 0 {
			return fmt.Errorf("%w: spacing and radii must be positive", ErrParameter)
		}
		if c.Acceleration < 0 || c.TurnRate < 0 || c.TurnScale < 0 || c.WrapMargin < 0 {
			return fmt.Errorf("%w: acceleration, turn rate, turn scale and wrap margin must not be negative", ErrParameter)
		}
		if c.ExclusionIndex < 1 {
			return fmt.Errorf("%w: exclusion index %d", ErrParameter, c.ExclusionIndex)
		}
		if float64(c.BaseLength-1)*c.SegmentSpacing > c.Width/2 {
			return fmt.Errorf("%w: %d segments do not fit a %g px board", ErrSnakeLength, c.BaseLength, c.Width)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownModel, int(c.Model))
	}
	return nil
}

// SpacingTolerance bounds how far two adjacent continuous-mode segments may
// exceed SegmentSpacing after any tick. The head moves at most MaxSpeed per
// tick and each follower closes Smoothing of its excess, so the excess
// converges to MaxSpeed*(1-Smoothing)/Smoothing.
func (c Config) SpacingTolerance() float64 {
	if c.Model != Continuous || c.Smoothing <= 0 {
		return 0
	}
	return c.MaxSpeed * (1 - c.Smoothing) / c.Smoothing
}

// lengthCap returns the continuous-mode segment cap for a score, or -1 when uncapped.
func (c Config) lengthCap(score int) int {
	if c.ScoreDivisor <= 0 {
		return -1
	}
	return c.BaseLength + score/c.ScoreDivisor
}

// levelFor maps a score to a speed level.
func (c Config) levelFor(score int) int {
	if c.LevelScoreStep <= 0 {
		return 1
	}
	level := 1 + score/c.LevelScoreStep
	if level > c.MaxLevel {
		level = c.MaxLevel
	}
	return level
}
