package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/JunalChowdhuryG/Expo-Snake/stats"
	"github.com/gorilla/websocket"
)

type rawServerEnvelope struct {
	Type string `json:"t"`
}

func startTestServer(t *testing.T, mutate func(*Config)) (*Server, string) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TickMS, cfg.MinTickMS = 5, 5
	cfg.IPCooldownSec = 0
	cfg.StaticDir = t.TempDir()
	if mutate != nil {
		mutate(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv, err := NewServer(ctx, cfg, stats.NewTracker())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

func dialTestServer(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(baseURL, "http") + WebSocketPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil returns the first message of type typ accepted by match.
func readUntil(t *testing.T, conn *websocket.Conn, typ string, match func(raw []byte) bool) []byte {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", typ, err)
		}
		var env rawServerEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("bad envelope %s: %v", raw, err)
		}
		if env.Type == typ && (match == nil || match(raw)) {
			return raw
		}
	}
}

func writeClientMessage(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %q: %v", msg.Type, err)
	}
}

func TestWebSocketJoinSteerAndPause(t *testing.T) {
	srv, url := startTestServer(t, nil)
	conn := dialTestServer(t, url)

	var welcome WelcomeMsg
	if err := json.Unmarshal(readUntil(t, conn, MsgWelcome, nil), &welcome); err != nil {
		t.Fatal(err)
	}
	if welcome.ID == "" || welcome.Mode != "grid" || welcome.Width != 40 || welcome.Height != 40 || welcome.Wrap != 1 {
		t.Errorf("welcome = %+v", welcome)
	}

	writeClientMessage(t, conn, ClientMessage{Type: MsgJoin, Name: "ana"})
	readUntil(t, conn, MsgState, nil)
	if _, ok := srv.hub.Get(welcome.ID); !ok {
		t.Fatal("joined session not registered")
	}

	// Heading right from the center; a DOWN turn moves the head below row 20.
	writeClientMessage(t, conn, ClientMessage{Type: MsgInput, Direction: sim.Down})
	readUntil(t, conn, MsgState, func(raw []byte) bool {
		var st StateMsg
		return json.Unmarshal(raw, &st) == nil && len(st.Snake) > 0 && st.Snake[0][1] > 20
	})

	writeClientMessage(t, conn, ClientMessage{Type: MsgPause})
	paused := readUntil(t, conn, MsgState, func(raw []byte) bool {
		var st StateMsg
		return json.Unmarshal(raw, &st) == nil && st.Paused == 1
	})
	var first StateMsg
	_ = json.Unmarshal(paused, &first)
	next := readUntil(t, conn, MsgState, nil)
	var second StateMsg
	_ = json.Unmarshal(next, &second)
	if second.Tick != first.Tick || second.Snake[0] != first.Snake[0] {
		t.Errorf("paused game advanced: tick %d -> %d", first.Tick, second.Tick)
	}

	writeClientMessage(t, conn, ClientMessage{Type: MsgRestart})
	readUntil(t, conn, MsgState, func(raw []byte) bool {
		var st StateMsg
		return json.Unmarshal(raw, &st) == nil && st.Paused == 0 && st.Tick <= 1
	})

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.Count() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if srv.hub.Count() != 0 {
		t.Error("session not removed after disconnect")
	}
}

func TestWebSocketServerFull(t *testing.T) {
	_, url := startTestServer(t, func(c *Config) { c.MaxPlayers = 0 })
	conn := dialTestServer(t, url)

	var msg ErrorMsg
	if err := json.Unmarshal(readUntil(t, conn, MsgError, nil), &msg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg.Message, "full") {
		t.Errorf("error message = %q", msg.Message)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := startTestServer(t, nil)
	srv.tracker.Record("ana", 30)
	srv.tracker.Record("ana", 70)
	routes := srv.Routes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, StatsPath+"?player=ana", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got stats.Stats
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.GamesPlayed != 2 || got.HighScore != 70 || got.TotalScore != 100 {
		t.Errorf("stats = %+v", got)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, StatsPath+"?player=bob", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown player status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, StatsPath, nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", rec.Code)
	}
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newIPRateLimiter(2 * time.Second)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.2.3.4") {
		t.Fatal("first connection refused")
	}
	if rl.allow("1.2.3.4") {
		t.Error("second connection inside the cooldown allowed")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other address refused")
	}

	now = now.Add(3 * time.Second)
	rl.sweep()
	if len(rl.times) != 0 {
		t.Errorf("sweep kept %d stale entries", len(rl.times))
	}
	if !rl.allow("1.2.3.4") {
		t.Error("connection after the cooldown refused")
	}
}
