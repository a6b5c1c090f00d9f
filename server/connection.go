package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/JunalChowdhuryG/Expo-Snake/sim"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = time.Second

// Sender delivers a message to one client.
type Sender interface {
	Send(msg any) error
}

// Conn is one player's socket. Reads happen on the ReadLoop goroutine only;
// writes come from the session ticker and are serialized by mu.
type Conn struct {
	ID   string
	Name string
	ws   *websocket.Conn

	mu     sync.Mutex
	held   sim.Input // keys and throttle reported by the last input message
	closed bool
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ID: uuid.NewString(), ws: ws}
}

// Send writes msg as one JSON text frame. Sends after Close are dropped.
func (c *Conn) Send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(msg)
}

// GetInput returns the held keys and throttle for the coming tick. Direction
// changes are queued on the simulation instead, so Direction is always None.
func (c *Conn) GetInput() sim.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

func (c *Conn) hold(in sim.Input) {
	in.Direction = sim.None
	c.mu.Lock()
	c.held = in
	c.mu.Unlock()
}

// Close is idempotent.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.ws.Close()
	}
}

// ReadLoop decodes client messages until the socket fails. onDisconnect runs
// once on exit, before the socket is closed.
func (c *Conn) ReadLoop(
	onJoin func(conn *Conn, name string),
	onEvent func(conn *Conn, ev sim.Event),
	onDisconnect func(conn *Conn),
) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read %s: %v", c.ID, err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("dropping malformed message from %s: %v", c.ID, err)
			continue
		}
		c.dispatch(msg, onJoin, onEvent)
	}
}

func (c *Conn) dispatch(msg ClientMessage, onJoin func(*Conn, string), onEvent func(*Conn, sim.Event)) {
	switch msg.Type {
	case MsgJoin:
		c.Name = msg.Name
		if c.Name == "" {
			c.Name = "Player"
		}
		onJoin(c, c.Name)
	case MsgInput:
		c.hold(msg.Input())
		if msg.Direction != sim.None {
			onEvent(c, sim.Event{Kind: sim.EventDirection, Direction: msg.Direction})
		}
	case MsgPause:
		onEvent(c, sim.Event{Kind: sim.EventTogglePause})
	case MsgRestart:
		onEvent(c, sim.Event{Kind: sim.EventRestart})
	default:
		log.Printf("unknown message type %q from %s", msg.Type, c.ID)
	}
}
