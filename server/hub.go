package main

import (
	"sort"
	"sync"
)

// Hub holds every running session, players and bots alike
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

// Add registers a session
func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

// Remove unregisters a session
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Get returns a session by ID
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Count returns the number of sessions
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Players returns the number of sessions driven by a connected client
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, s := range h.sessions {
		if !s.IsBot() {
			n++
		}
	}
	return n
}

// Leaderboard returns the top n running games by score.
// Finished games are left out until they restart.
func (h *Hub) Leaderboard(n int) []LeaderboardEntry {
	h.mu.RLock()
	entries := make([]LeaderboardEntry, 0, len(h.sessions))
	for _, s := range h.sessions {
		st := s.Snapshot()
		if st.IsGameOver {
			continue
		}
		entries = append(entries, LeaderboardEntry{ID: s.ID, Name: s.Name(), Score: st.Score})
	}
	h.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
