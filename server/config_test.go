package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SNAKE_ADDR", "SNAKE_STATIC_DIR", "SNAKE_MODE", "SNAKE_STEERING", "SNAKE_WRAP", "SNAKE_BOTS"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != DefaultAddr || cfg.Mode != "grid" || cfg.Wrap != nil || cfg.TickMS != TickMS {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "snake.json")
	body := `{"addr":":9000","mode":"continuous","steering":"angular","bots":2,"tickMs":120,"width":400}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SNAKE_ADDR", ":9100")
	t.Setenv("SNAKE_BOTS", "3")

	cfg, err := LoadConfig([]string{"-config", path, "-bots", "4", "-wrap"})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Errorf("addr = %q, env should beat the file", cfg.Addr)
	}
	if cfg.Bots != 4 {
		t.Errorf("bots = %d, flag should beat env", cfg.Bots)
	}
	if cfg.Mode != "continuous" || cfg.TickMS != 120 {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.Wrap == nil || !*cfg.Wrap {
		t.Error("-wrap not applied")
	}

	sc, err := cfg.SimConfig()
	if err != nil {
		t.Fatalf("SimConfig: %v", err)
	}
	if sc.Model != sim.Continuous || sc.Steering != sim.SteerAngular || !sc.WrapEdges || sc.Width != 400 {
		t.Errorf("sim config = %+v", sc)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig([]string{"-mode", "hex"}); !errors.Is(err, sim.ErrUnknownModel) {
		t.Errorf("bad mode error = %v", err)
	}
	if _, err := LoadConfig([]string{"-mode", "continuous", "-steering", "drift"}); !errors.Is(err, sim.ErrUnknownSteering) {
		t.Errorf("bad steering error = %v", err)
	}

	t.Setenv("SNAKE_WRAP", "maybe")
	if _, err := LoadConfig(nil); err == nil {
		t.Error("SNAKE_WRAP=maybe accepted")
	}

	clearEnv(t)
	if _, err := LoadConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestSimConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	wrap := false
	cfg.Wrap = &wrap
	cfg.Columns, cfg.Rows, cfg.FoodCount = 20, 10, 3

	sc, err := cfg.SimConfig()
	if err != nil {
		t.Fatalf("SimConfig: %v", err)
	}
	if sc.WrapEdges || sc.Columns != 20 || sc.Rows != 10 || sc.FoodCount != 3 {
		t.Errorf("sim config = %+v", sc)
	}
}

func TestInterval(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		model sim.MovementModel
		level int
		want  time.Duration
	}{
		{sim.Grid, 1, 150 * time.Millisecond},
		{sim.Grid, 2, 130 * time.Millisecond},
		{sim.Grid, 5, 70 * time.Millisecond},
		{sim.Grid, 6, 50 * time.Millisecond},
		{sim.Grid, 9, 50 * time.Millisecond},
		{sim.Continuous, 1, 16 * time.Millisecond},
		{sim.Continuous, 5, 16 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := cfg.Interval(tt.model, tt.level); got != tt.want {
			t.Errorf("Interval(%v, %d) = %v, want %v", tt.model, tt.level, got, tt.want)
		}
	}
}
