package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/JunalChowdhuryG/Expo-Snake/stats"
	"github.com/gorilla/websocket"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		times:    make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if last, ok := rl.times[ip]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.times[ip] = now
	return true
}

// sweep drops entries older than the cooldown
func (rl *ipRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

// janitor sweeps stale entries every 60s until ctx is done
func (rl *ipRateLimiter) janitor(ctx context.Context) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// Server owns the sessions of all connected players.
type Server struct {
	ctx      context.Context
	cfg      Config
	simCfg   sim.Config
	hub      *Hub
	tracker  *stats.Tracker
	limiter  *ipRateLimiter
	upgrader websocket.Upgrader
}

// NewServer validates cfg. Sessions started by the server stop when ctx is done.
func NewServer(ctx context.Context, cfg Config, tracker *stats.Tracker) (*Server, error) {
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}
	return &Server{
		ctx:     ctx,
		cfg:     cfg,
		simCfg:  simCfg,
		hub:     NewHub(),
		tracker: tracker,
		limiter: newIPRateLimiter(time.Duration(cfg.IPCooldownSec) * time.Second),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development; tighten in production
				return true
			},
			ReadBufferSize:    1024,
			WriteBufferSize:   4096,
			EnableCompression: true,
		},
	}, nil
}

// Routes returns the HTTP handler: the game socket, the stats endpoint and
// the static client.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.handleWS)
	mux.HandleFunc(StatsPath, s.handleStats)
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	return mux
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For for reverse proxies
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// Check limits after upgrade so client can receive error messages
	if s.hub.Players() >= s.cfg.MaxPlayers {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	if !s.limiter.allow(ip) {
		sendErrorAndClose(ws, "Too many connections. Please wait a moment.")
		return
	}
	ws.EnableWriteCompression(true)

	conn := NewConn(ws)
	log.Printf("player connected: %s", conn.ID)

	welcome := WelcomeMsg{Type: MsgWelcome, ID: conn.ID, Mode: s.simCfg.Model.String()}
	if s.simCfg.Model == sim.Grid {
		welcome.Width, welcome.Height = float64(s.simCfg.Columns), float64(s.simCfg.Rows)
	} else {
		welcome.Width, welcome.Height = s.simCfg.Width, s.simCfg.Height
	}
	welcome.Wrap = boolInt(s.simCfg.WrapEdges)
	_ = conn.Send(welcome)

	// The read loop is the only caller of these callbacks.
	var session *Session
	var stop context.CancelFunc

	onJoin := func(c *Conn, name string) {
		if session != nil {
			// Rejoin starts a new game under the new name
			session.Rename(name)
			session.Apply(sim.Event{Kind: sim.EventRestart})
			return
		}
		sess, err := NewSession(c.ID, name, s.cfg, s.hub, s.tracker, c, func(sim.State) sim.Input {
			return c.GetInput()
		})
		if err != nil {
			log.Printf("session for %s: %v", c.ID, err)
			return
		}
		session = sess
		s.hub.Add(sess)
		var ctx context.Context
		ctx, stop = context.WithCancel(s.ctx)
		go sess.Run(ctx)
		log.Printf("snake joined: %s (%s)", name, c.ID)
	}

	onEvent := func(c *Conn, ev sim.Event) {
		if session != nil {
			session.Apply(ev)
		}
	}

	onDisconnect := func(c *Conn) {
		if stop != nil {
			stop()
		}
		s.hub.Remove(c.ID)
		log.Printf("player disconnected: %s", c.ID)
	}

	// Blocking read loop, runs until client disconnects
	conn.ReadLoop(onJoin, onEvent, onDisconnect)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	player := r.URL.Query().Get("player")
	if player == "" {
		_ = json.NewEncoder(w).Encode(s.tracker.Snapshot())
		return
	}
	st, ok := s.tracker.Get(player)
	if !ok {
		http.Error(w, "unknown player", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := stats.NewTracker()
	srv, err := NewServer(ctx, cfg, tracker)
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	go srv.limiter.janitor(ctx)

	if err := NewBotManager(cfg, srv.hub, tracker).Start(ctx); err != nil {
		log.Fatalf("bots: %v", err)
	}

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("server listening on %s (%s mode, wrap=%v)", cfg.Addr, srv.simCfg.Model, srv.simCfg.WrapEdges)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
