// Command terminal plays snake locally in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/gdamore/tcell/v2"
)

func main() {
	mode := flag.String("mode", "grid", "movement model: grid or continuous")
	steering := flag.String("steering", "instant", "continuous steering: instant or angular")
	wrap := flag.Bool("wrap", false, "wrap around the board edges (default depends on mode)")
	seed := flag.Int64("seed", 0, "food placement seed, 0 picks one")
	logPath := flag.String("log", "snake.log", "log file, the screen owns stdout")
	flag.Parse()

	// The screen owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	var wrapSet *bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "wrap" {
			wrapSet = wrap
		}
	})
	cfg, err := buildConfig(*mode, *steering, wrapSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	var opts []sim.Option
	if *seed != 0 {
		opts = append(opts, sim.WithSeed(*seed))
	}
	game, err := NewGame(screen, cfg, sim.DefaultPace(), opts...)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	log.Printf("starting %s game (wrap=%v)", cfg.Model, cfg.WrapEdges)
	game.run()
	screen.Fini()

	best := game.Best()
	fmt.Printf("score %d, best %d over %d games\n", game.last.Score, best.HighScore, best.GamesPlayed)
}

// buildConfig picks the mode defaults and applies the command-line overrides.
func buildConfig(mode, steering string, wrap *bool) (sim.Config, error) {
	model, err := sim.ParseMovementModel(mode)
	if err != nil {
		return sim.Config{}, err
	}
	cfg := sim.DefaultGridConfig()
	if model == sim.Continuous {
		cfg = sim.DefaultContinuousConfig()
		if cfg.Steering, err = sim.ParseSteeringMode(steering); err != nil {
			return sim.Config{}, err
		}
	}
	if wrap != nil {
		cfg.WrapEdges = *wrap
	}
	return cfg, cfg.Validate()
}
