package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/JunalChowdhuryG/Expo-Snake/stats"
)

// InputSource supplies the held input for the next tick. It sees the
// snapshot published by the previous tick.
type InputSource func(last sim.State) sim.Input

// Session drives one simulation at its own tick rate and publishes a
// snapshot after every tick. Renderers only ever see those snapshots.
type Session struct {
	ID string

	sim   *sim.Simulation
	cfg   Config
	hub   *Hub
	out   Sender // nil for bots
	input InputSource

	respawnAfter int // ticks after game over before an automatic restart; 0 waits for the client
	deadTicks    int

	mu   sync.RWMutex // protects name and last
	name string
	last sim.State
}

// NewSession builds a session around a fresh simulation. Finished games with
// a nonzero score are recorded in tracker under the session's current name.
func NewSession(id, name string, cfg Config, hub *Hub, tracker *stats.Tracker, out Sender, input InputSource) (*Session, error) {
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:    id,
		cfg:   cfg,
		hub:   hub,
		out:   out,
		input: input,
		name:  name,
	}
	s.sim, err = sim.New(simCfg, sim.WithGameOverHook(func(score int) {
		if tracker == nil {
			return
		}
		if agg, ok := tracker.Record(s.Name(), score); ok {
			log.Printf("game over: %s scored %d (best %d over %d games)", s.Name(), score, agg.HighScore, agg.GamesPlayed)
		}
	}))
	if err != nil {
		return nil, err
	}
	s.last = s.sim.Snapshot()
	return s, nil
}

// Name returns the player name.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Rename changes the name future games are recorded under.
func (s *Session) Rename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// IsBot reports whether no client receives this session's snapshots.
func (s *Session) IsBot() bool {
	return s.out == nil
}

// Apply queues an input-source event for the next tick.
func (s *Session) Apply(ev sim.Event) {
	s.sim.Apply(ev)
}

// Snapshot returns the state published by the last tick.
func (s *Session) Snapshot() sim.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last.Clone()
}

// Run ticks the session until ctx is cancelled. Grid sessions speed up
// as the level rises.
func (s *Session) Run(ctx context.Context) {
	model := s.sim.Config().Model
	level := s.Snapshot().Level
	ticker := time.NewTicker(s.cfg.Interval(model, level))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := s.step()
			if st.Level != level {
				level = st.Level
				ticker.Reset(s.cfg.Interval(model, level))
			}
		}
	}
}

// step executes a single tick and publishes the result
func (s *Session) step() sim.State {
	prev := s.Snapshot()

	var in sim.Input
	if s.input != nil {
		in = s.input(prev)
	}
	st := s.sim.Tick(in)

	s.mu.Lock()
	s.last = st
	s.mu.Unlock()

	if st.IsGameOver {
		if !prev.IsGameOver {
			s.deadTicks = 0
			if s.out != nil {
				if err := s.out.Send(DeathMsg{Type: MsgDeath, Score: st.Score}); err != nil {
					log.Printf("send error to %s: %v", s.ID, err)
				}
			}
		}
		if s.respawnAfter > 0 {
			s.deadTicks++
			if s.deadTicks >= s.respawnAfter {
				s.deadTicks = 0
				s.sim.Restart()
			}
		}
	}

	if s.out != nil {
		var board []LeaderboardEntry
		if s.hub != nil {
			board = s.hub.Leaderboard(s.cfg.LeaderboardSize)
		}
		if err := s.out.Send(NewStateMsg(st, board)); err != nil {
			log.Printf("send error to %s: %v", s.ID, err)
		}
	}
	return st
}
