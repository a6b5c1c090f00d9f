package main

import (
	"log"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/JunalChowdhuryG/Expo-Snake/stats"
	"github.com/gdamore/tcell/v2"
)

const (
	localPlayer = "local"
	frameMs     = 16 // continuous mode frame period
)

// Game runs a local simulation on a terminal screen. Keys become
// simulation events; each tick the latest snapshot is drawn.
type Game struct {
	screen  tcell.Screen
	sim     *sim.Simulation
	cfg     sim.Config
	pace    sim.Pace
	tracker *stats.Tracker

	// Terminals report key presses only, so continuous steering latches
	// the last direction pressed.
	held  sim.DirectionSet
	boost bool
	brake bool

	last sim.State
}

// NewGame binds a simulation for cfg to an initialized screen.
func NewGame(screen tcell.Screen, cfg sim.Config, pace sim.Pace, opts ...sim.Option) (*Game, error) {
	g := &Game{
		screen:  screen,
		cfg:     cfg,
		pace:    pace,
		tracker: stats.NewTracker(),
	}
	opts = append(opts, sim.WithGameOverHook(func(score int) {
		agg, _ := g.tracker.Record(localPlayer, score)
		log.Printf("game over: score %d, best %d", score, agg.HighScore)
	}))
	s, err := sim.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	g.sim = s
	g.last = s.Snapshot()
	return g, nil
}

// Best returns the best finished score of this run.
func (g *Game) Best() stats.Stats {
	s, _ := g.tracker.Get(localPlayer)
	return s
}

func (g *Game) interval() time.Duration {
	if g.cfg.Model == sim.Continuous {
		return frameMs * time.Millisecond
	}
	return g.pace.Interval(g.last.Level)
}

// handleInput applies one terminal event and reports whether to keep running.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}
		if d := keyDirection(ev); d != sim.None {
			g.steer(d)
			return true
		}
		switch {
		case ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R')):
			g.held, g.boost, g.brake = 0, false, false
			g.sim.Restart()
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			g.sim.TogglePause()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'b':
			g.boost, g.brake = !g.boost, false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			g.brake, g.boost = !g.brake, false
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) steer(d sim.Direction) {
	if g.cfg.Model == sim.Grid {
		g.sim.SetDirection(d)
		return
	}
	g.held = sim.Held(d)
}

// keyDirection maps arrows and WASD to directions.
func keyDirection(ev *tcell.EventKey) sim.Direction {
	switch ev.Key() {
	case tcell.KeyUp:
		return sim.Up
	case tcell.KeyDown:
		return sim.Down
	case tcell.KeyLeft:
		return sim.Left
	case tcell.KeyRight:
		return sim.Right
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return sim.Up
		case 's', 'S':
			return sim.Down
		case 'a', 'A':
			return sim.Left
		case 'd', 'D':
			return sim.Right
		}
	}
	return sim.None
}

// step advances one tick with the latched input.
func (g *Game) step() {
	g.last = g.sim.Tick(sim.Input{Held: g.held, Boost: g.boost, Brake: g.brake})
}

func (g *Game) draw() {
	g.screen.Clear()
	w, h := g.screen.Size()
	best := g.Best()
	draw(g.screen, newLayout(g.cfg, w, h), g.last, hud{Best: best.HighScore, Games: best.GamesPlayed})
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(g.interval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			level := g.last.Level
			g.step()
			if g.last.Level != level {
				ticker.Reset(g.interval())
			}
			g.draw()
		}
	}
}
