package sim

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		base   func() Config
		want   error
	}{
		{"grid defaults", func(*Config) {}, DefaultGridConfig, nil},
		{"continuous defaults", func(*Config) {}, DefaultContinuousConfig, nil},
		{"no columns", func(c *Config) { c.Columns = 0 }, DefaultGridConfig, ErrBoardSize},
		{"snake too long for grid", func(c *Config) { c.Columns = 6 }, DefaultGridConfig, ErrSnakeLength},
		{"zero base length", func(c *Config) { c.BaseLength = 0 }, DefaultGridConfig, ErrSnakeLength},
		{"too much food", func(c *Config) { c.Columns, c.Rows, c.FoodCount = 10, 1, 6 }, DefaultGridConfig, ErrParameter},
		{"no width", func(c *Config) { c.Width = 0 }, DefaultContinuousConfig, ErrBoardSize},
		{"speed above ceiling", func(c *Config) { c.Speed = 10 }, DefaultContinuousConfig, ErrSpeedRange},
		{"zero floor", func(c *Config) { c.MinSpeed = 0 }, DefaultContinuousConfig, ErrSpeedRange},
		{"zero smoothing", func(c *Config) { c.Smoothing = 0 }, DefaultContinuousConfig, ErrSmoothing},
		{"smoothing above one", func(c *Config) { c.Smoothing = 1.5 }, DefaultContinuousConfig, ErrSmoothing},
		{"zero exclusion", func(c *Config) { c.ExclusionIndex = 0 }, DefaultContinuousConfig, ErrParameter},
		{"negative reward", func(c *Config) { c.ScoreReward = -1 }, DefaultContinuousConfig, ErrParameter},
		{"unknown model", func(c *Config) { c.Model = MovementModel(7) }, DefaultGridConfig, ErrUnknownModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseMovementModel(" Continuous "); err != nil || m != Continuous {
		t.Errorf("ParseMovementModel = %v, %v", m, err)
	}
	if _, err := ParseMovementModel("hex"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("ParseMovementModel(hex) error = %v", err)
	}
	if m, err := ParseSteeringMode("ANGULAR"); err != nil || m != SteerAngular {
		t.Errorf("ParseSteeringMode = %v, %v", m, err)
	}
	if _, err := ParseSteeringMode("drift"); !errors.Is(err, ErrUnknownSteering) {
		t.Errorf("ParseSteeringMode(drift) error = %v", err)
	}
}

func TestDirections(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite is %v", d, d.Opposite().Opposite())
		}
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
		dv, ov := d.Delta(), d.Opposite().Delta()
		if dv.X+ov.X != 0 || dv.Y+ov.Y != 0 {
			t.Errorf("%v: delta %v does not cancel its opposite %v", d, dv, ov)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection accepted garbage")
	}
	if v := Held(Up, Down, Right).Resultant(); v != (Vec{X: 1}) {
		t.Errorf("Resultant = %v, want (1, 0)", v)
	}
	if s := Held(Left).Without(Left); s.Has(Left) {
		t.Error("Without did not clear the key")
	}
}
