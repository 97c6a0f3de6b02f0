package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"brains3d/internal/sims/briansbrain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	// Upper bound on how long a viewer command may wait for the session.
	commandTimeout = 2 * time.Second
)

// Command is sent from viewers to the server.
type Command struct {
	Type string `json:"type"` // "toggle", "pause", "reset", "step", "snapshot"
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
}

// Client is a single WebSocket viewer.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// readPump decodes commands from the connection until it fails.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("client %s: %v", c.id, err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Warn("client %s sent malformed command: %v", c.id, err)
			continue
		}
		c.handle(cmd)
	}
}

func (c *Client) handle(cmd Command) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	ctrl := c.hub.ctrl
	var err error
	switch cmd.Type {
	case "toggle":
		var state briansbrain.CellState
		state, err = ctrl.ToggleCell(ctx, cmd.X, cmd.Y, cmd.Z)
		if err == nil {
			c.hub.logger.Event("TOGGLE", c.id, fmt.Sprintf("(%d,%d,%d) -> %s", cmd.X, cmd.Y, cmd.Z, state))
		}
	case "pause":
		var running bool
		running, err = ctrl.ToggleRunning(ctx)
		if err == nil {
			c.hub.logger.Event("RUNNING", c.id, fmt.Sprintf("%v", running))
		}
	case "reset":
		err = ctrl.Reset(ctx)
		if err == nil {
			c.hub.logger.Event("RESET", c.id, "")
		}
	case "step":
		err = ctrl.Step(ctx)
	case "snapshot":
		frame, serr := ctrl.Snapshot(ctx)
		if serr == nil {
			c.hub.sendTo(c, Message{Type: MessageFrame, Frame: &frame})
		}
		err = serr
	default:
		c.hub.logger.Warn("client %s sent unknown command %q", c.id, cmd.Type)
		return
	}
	if err != nil {
		c.hub.logger.Warn("client %s %s failed: %v", c.id, cmd.Type, err)
		c.hub.sendTo(c, Message{Type: MessageError, Error: err.Error()})
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
