package main

import (
	"math"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
)

// Protocol uses single-character JSON keys to minimize wire size.
// Continuous coordinates are rounded to 1 decimal place.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "j" = join    {"t":"j","n":"PlayerName"}
//     "i" = input   {"t":"i","d":"UP","k":["UP","LEFT"],"b":1,"x":0}
//                   (d=direction, k=held keys, b=boost, x=brake)
//     "p" = pause   {"t":"p"}
//     "r" = restart {"t":"r"}
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","m":"grid","c":40,"r":40,"e":1} (e=wrap)
//     "s" = state   {"t":"s","s":[[x,y],...],"f":[[x,y]],"p":score,"v":level,"n":tick,"o":0,"z":0,"l":[leaderboard]}
//     "d" = death   {"t":"d","p":score}
//     "e" = error   {"t":"e","m":"message"}
//
// LeaderboardEntry: {"i":"id","n":"name","p":score}

const (
	MsgJoin    = "j"
	MsgInput   = "i"
	MsgPause   = "p"
	MsgRestart = "r"
	MsgWelcome = "w"
	MsgState   = "s"
	MsgDeath   = "d"
	MsgError   = "e"
)

// ClientMessage is the base incoming message from the browser.
type ClientMessage struct {
	Type      string          `json:"t"`
	Name      string          `json:"n,omitempty"`
	Direction sim.Direction   `json:"d,omitempty"`
	Held      []sim.Direction `json:"k,omitempty"`
	Boost     int             `json:"b,omitempty"` // 0 or 1
	Brake     int             `json:"x,omitempty"` // 0 or 1
}

// WelcomeMsg is sent to a player immediately on WebSocket connect.
// Board size is in cells for grid mode and pixels for continuous mode.
type WelcomeMsg struct {
	Type   string  `json:"t"`
	ID     string  `json:"i"`
	Mode   string  `json:"m"`
	Width  float64 `json:"c"`
	Height float64 `json:"r"`
	Wrap   int     `json:"e,omitempty"`
}

// LeaderboardEntry is a single leaderboard row.
type LeaderboardEntry struct {
	ID    string `json:"i"`
	Name  string `json:"n"`
	Score int    `json:"p"`
}

// StateMsg is the per-tick snapshot sent to the owning client.
// Snake is head first.
type StateMsg struct {
	Type        string             `json:"t"`
	Snake       [][2]float64       `json:"s"`
	Food        [][2]float64       `json:"f"`
	Score       int                `json:"p"`
	Level       int                `json:"v"`
	Tick        int                `json:"n"`
	GameOver    int                `json:"o"`
	Paused      int                `json:"z"`
	Leaderboard []LeaderboardEntry `json:"l,omitempty"`
}

// DeathMsg is sent once when a session's game ends.
type DeathMsg struct {
	Type  string `json:"t"`
	Score int    `json:"p"`
}

// ErrorMsg is sent before the server drops a connection it refused.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// NewStateMsg encodes a snapshot for the wire.
func NewStateMsg(st sim.State, board []LeaderboardEntry) StateMsg {
	return StateMsg{
		Type:        MsgState,
		Snake:       encodePoints(st.Snake),
		Food:        encodePoints(st.Food),
		Score:       st.Score,
		Level:       st.Level,
		Tick:        st.Tick,
		GameOver:    boolInt(st.IsGameOver),
		Paused:      boolInt(st.IsPaused),
		Leaderboard: board,
	}
}

// Input converts an input message to a core input.
func (m ClientMessage) Input() sim.Input {
	return sim.Input{
		Direction: m.Direction,
		Held:      sim.Held(m.Held...),
		Boost:     m.Boost == 1,
		Brake:     m.Brake == 1,
	}
}

func encodePoints(pts []sim.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{roundTo1(p.X), roundTo1(p.Y)}
	}
	return out
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
