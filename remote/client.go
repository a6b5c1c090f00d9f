// Package remote talks to an external authoritative snake server. The
// authority owns the game; this client only forwards input and exposes the
// snapshots it receives.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/gorilla/websocket"
)

var (
	// ErrNotPlaying is returned for input while no game is running.
	ErrNotPlaying = errors.New("remote: game not in progress")
	// ErrPaused is returned for input while the client is paused.
	ErrPaused = errors.New("remote: paused")
)

// Conn is a JSON message connection. *websocket.Conn satisfies it.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// Client is one connection to the authority.
type Client struct {
	conn    Conn
	writeMu sync.Mutex // one writer at a time on conn

	mu        sync.Mutex // protects the fields below
	view      View
	listeners map[int]func(View)
	nextID    int
	started   bool
	paused    bool
}

// NewClient wraps an open connection.
func NewClient(conn Conn) *Client {
	return &Client{
		conn:      conn,
		view:      View{PlayerID: -1},
		listeners: make(map[int]func(View)),
	}
}

// Dial opens a WebSocket connection to the authority at url.
func Dial(ctx context.Context, url string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: dial %s: %w", url, err)
	}
	return NewClient(ws), nil
}

// Subscribe registers fn for every snapshot and calls it once right away
// with the current view. The returned func removes it.
func (c *Client) Subscribe(fn func(View)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	v := c.view.clone()
	c.mu.Unlock()

	deliver(fn, v)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// View returns a copy of the latest view.
func (c *Client) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.clone()
}

// Join asks the authority to add a player called name.
func (c *Client) Join(name string) error {
	return c.send(Message{Action: ActionJoinGame, PlayerName: name, PlayerID: c.View().PlayerID})
}

// Start asks the authority to start the game.
func (c *Client) Start() error {
	return c.send(Message{Action: ActionStartGame, PlayerID: c.View().PlayerID})
}

// Restart asks the authority for a new game.
func (c *Client) Restart() error {
	return c.send(Message{Action: ActionRestartGame, PlayerID: c.View().PlayerID})
}

// SendInput forwards a direction. It is refused locally while no game is
// running or while paused.
func (c *Client) SendInput(d sim.Direction) error {
	c.mu.Lock()
	playing := c.view.InProgress && !c.view.GameOver
	paused := c.paused
	id := c.view.PlayerID
	c.mu.Unlock()

	switch {
	case !playing:
		return ErrNotPlaying
	case paused:
		return ErrPaused
	case d == sim.None:
		return nil
	}
	return c.send(Message{Action: ActionPlayerInput, Input: d.String(), PlayerID: id})
}

// TogglePause flips the local pause and reports the new value. The
// authority keeps running; only this client's input is held back.
func (c *Client) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// Run reads messages until the connection fails or ctx is cancelled, which
// closes the connection.
func (c *Client) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.Close()
		case <-done:
		}
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("remote: read: %w", err)
		}
		if err := c.handle(msg); err != nil {
			return err
		}
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) handle(msg Message) error {
	switch msg.Action {
	case ActionPlayerID:
		c.mu.Lock()
		c.view.PlayerID = msg.PlayerID
		start := !c.started
		c.started = true
		c.mu.Unlock()
		c.notify()
		if start {
			return c.Start()
		}

	case ActionUpdateState:
		c.mu.Lock()
		c.view.Objects = msg.Objects
		c.view.GameOver = msg.GameOver
		c.view.InProgress = msg.GameInProgress
		c.view.Scores = msg.PlayerScores
		c.view.Names = msg.PlayerNames
		c.mu.Unlock()
		c.notify()

	default:
		log.Printf("remote: ignoring %q message", msg.Action)
	}
	return nil
}

func (c *Client) notify() {
	c.mu.Lock()
	v := c.view
	fns := make([]func(View), 0, len(c.listeners))
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		deliver(fn, v.clone())
	}
}

// deliver runs one listener. A panic is logged and does not reach the
// other listeners.
func deliver(fn func(View), v View) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("remote: listener panic: %v", r)
		}
	}()
	fn(v)
}

func (c *Client) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("remote: send %s: %w", msg.Action, err)
	}
	return nil
}
