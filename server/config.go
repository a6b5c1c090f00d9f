package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
)

// Server defaults. Every value can be overridden by the JSON config file,
// then SNAKE_* environment variables, then flags.
const (
	// Server
	DefaultAddr      = ":8080"
	DefaultStaticDir = "../client"
	WebSocketPath    = "/ws"
	StatsPath        = "/stats"
	MaxPlayers       = 64
	IPCooldownSec    = 2

	// Grid ticks start at TickMS and speed up by LevelSpeedupMS per level, never below MinTickMS.
	TickMS         = 150
	LevelSpeedupMS = 20
	MinTickMS      = 50
	// Continuous mode runs at a fixed frame rate
	FrameMS = 16

	// Leaderboard
	LeaderboardSize = 10

	// Bot AI
	BotCount          = 0
	BotRespawnTicks   = 50    // ticks between a bot's game over and its restart
	BotDangerRadius   = 40.0  // px; body segments closer than this ahead trigger avoidance
	BotBoundaryBuffer = 60.0  // px; steer toward center when this close to a wall
	BotSeekTimeout    = 300   // ticks chasing the same food before giving up
	BotWanderMinTicks = 20
	BotWanderMaxTicks = 50
)

// Config is the server configuration.
type Config struct {
	Addr      string `json:"addr"`
	StaticDir string `json:"staticDir"`

	Mode     string `json:"mode"`     // grid or continuous
	Steering string `json:"steering"` // instant or angular
	Wrap     *bool  `json:"wrap"`     // nil keeps the mode default

	Columns   int     `json:"columns"`
	Rows      int     `json:"rows"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FoodCount int     `json:"foodCount"`

	TickMS         int `json:"tickMs"`
	LevelSpeedupMS int `json:"levelSpeedupMs"`
	MinTickMS      int `json:"minTickMs"`
	FrameMS        int `json:"frameMs"`

	MaxPlayers      int `json:"maxPlayers"`
	IPCooldownSec   int `json:"ipCooldownSec"`
	LeaderboardSize int `json:"leaderboardSize"`

	Bots            int `json:"bots"`
	BotRespawnTicks int `json:"botRespawnTicks"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		StaticDir:       DefaultStaticDir,
		Mode:            sim.Grid.String(),
		Steering:        sim.SteerInstant.String(),
		TickMS:          TickMS,
		LevelSpeedupMS:  LevelSpeedupMS,
		MinTickMS:       MinTickMS,
		FrameMS:         FrameMS,
		MaxPlayers:      MaxPlayers,
		IPCooldownSec:   IPCooldownSec,
		LeaderboardSize: LeaderboardSize,
		Bots:            BotCount,
		BotRespawnTicks: BotRespawnTicks,
	}
}

// LoadConfig builds the configuration from defaults, the optional -config
// JSON file, the environment and the command line, in that order.
func LoadConfig(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	path := fs.String("config", "", "JSON config file")
	addr := fs.String("addr", cfg.Addr, "listen address")
	static := fs.String("static", cfg.StaticDir, "static client directory")
	mode := fs.String("mode", cfg.Mode, "movement model: grid or continuous")
	steering := fs.String("steering", cfg.Steering, "continuous steering: instant or angular")
	wrap := fs.Bool("wrap", false, "wrap around the board edges")
	bots := fs.Int("bots", cfg.Bots, "autopilot sessions to run")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		if err := cfg.loadFile(*path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "static":
			cfg.StaticDir = *static
		case "mode":
			cfg.Mode = *mode
		case "steering":
			cfg.Steering = *steering
		case "wrap":
			w := *wrap
			cfg.Wrap = &w
		case "bots":
			cfg.Bots = *bots
		}
	})

	if _, err := cfg.SimConfig(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("SNAKE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("SNAKE_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := getenv("SNAKE_MODE"); v != "" {
		c.Mode = v
	}
	if v := getenv("SNAKE_STEERING"); v != "" {
		c.Steering = v
	}
	if v := getenv("SNAKE_WRAP"); v != "" {
		w, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SNAKE_WRAP: %w", err)
		}
		c.Wrap = &w
	}
	if v := getenv("SNAKE_BOTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SNAKE_BOTS: %w", err)
		}
		c.Bots = n
	}
	return nil
}

// SimConfig derives and validates the simulation config for new sessions.
func (c Config) SimConfig() (sim.Config, error) {
	model, err := sim.ParseMovementModel(c.Mode)
	if err != nil {
		return sim.Config{}, err
	}

	var sc sim.Config
	if model == sim.Continuous {
		sc = sim.DefaultContinuousConfig()
		if sc.Steering, err = sim.ParseSteeringMode(c.Steering); err != nil {
			return sim.Config{}, err
		}
	} else {
		sc = sim.DefaultGridConfig()
	}

	if c.Wrap != nil {
		sc.WrapEdges = *c.Wrap
	}
	if c.Columns > 0 {
		sc.Columns = c.Columns
	}
	if c.Rows > 0 {
		sc.Rows = c.Rows
	}
	if c.Width > 0 {
		sc.Width = c.Width
	}
	if c.Height > 0 {
		sc.Height = c.Height
	}
	if c.FoodCount > 0 {
		sc.FoodCount = c.FoodCount
	}
	if err := sc.Validate(); err != nil {
		return sim.Config{}, err
	}
	return sc, nil
}

// Pace returns the grid-mode level pacing.
func (c Config) Pace() sim.Pace {
	return sim.Pace{
		Base:    time.Duration(c.TickMS) * time.Millisecond,
		Speedup: time.Duration(c.LevelSpeedupMS) * time.Millisecond,
		Min:     time.Duration(c.MinTickMS) * time.Millisecond,
	}
}

// Interval returns the tick period for a movement model at a level.
func (c Config) Interval(model sim.MovementModel, level int) time.Duration {
	if model == sim.Continuous {
		return time.Duration(c.FrameMS) * time.Millisecond
	}
	return c.Pace().Interval(level)
}
