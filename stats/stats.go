// Package stats keeps per-player aggregates of finished games in memory.
package stats

import (
	"sort"
	"sync"
)

// Stats is the aggregate for one player.
type Stats struct {
	Player      string `json:"player"`
	GamesPlayed int    `json:"gamesPlayed"`
	HighScore   int    `json:"highScore"`
	TotalScore  int    `json:"totalScore"`
}

// Tracker records finished games. It is safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	players map[string]*Stats
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{players: make(map[string]*Stats)}
}

// Record adds one finished game for player and returns the updated
// aggregate. Games that scored nothing are not counted and report false.
func (t *Tracker) Record(player string, score int) (Stats, bool) {
	if score <= 0 {
		s, _ := t.Get(player)
		return s, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.players[player]
	if !ok {
		s = &Stats{Player: player}
		t.players[player] = s
	}
	s.GamesPlayed++
	s.TotalScore += score
	if score > s.HighScore {
		s.HighScore = score
	}
	return *s, true
}

// Get returns the aggregate for player, if any game was recorded.
func (t *Tracker) Get(player string) (Stats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.players[player]
	if !ok {
		return Stats{Player: player}, false
	}
	return *s, true
}

// Snapshot returns every aggregate ordered by high score, best first.
func (t *Tracker) Snapshot() []Stats {
	t.mu.RLock()
	out := make([]Stats, 0, len(t.players))
	for _, s := range t.players {
		out = append(out, *s)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].HighScore != out[j].HighScore {
			return out[i].HighScore > out[j].HighScore
		}
		return out[i].Player < out[j].Player
	})
	return out
}
