// Package stream publishes session frames to WebSocket viewers and relays
// their commands back to the session.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"brains3d/internal/platform/logger"
	"brains3d/internal/session"
	"brains3d/internal/sims/briansbrain"
)

// Controller is the set of operations viewers may trigger.
type Controller interface {
	ToggleCell(ctx context.Context, x, y, z int) (briansbrain.CellState, error)
	ToggleRunning(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error
	Step(ctx context.Context) error
	Snapshot(ctx context.Context) (session.Frame, error)
}

// Message is sent from the server to viewers.
type Message struct {
	Type  string         `json:"type"`
	Frame *session.Frame `json:"frame,omitempty"`
	Error string         `json:"error,omitempty"`
}

// Message types.
const (
	MessageFrame = "frame"
	MessageError = "error"
)

type directMessage struct {
	client  *Client
	payload []byte
}

// Hub maintains the set of active viewers and broadcasts frames to them. The
// client set is owned by the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	ctrl     Controller
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

// NewHub initializes a Hub relaying commands to ctrl.
func NewHub(ctrl Controller, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Discard()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		direct:     make(chan directMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		ctrl:       ctrl,
		logger:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Run handles registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("stream hub shutting down")
			return
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Event("CONNECT", client.id, client.conn.RemoteAddr().String())
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Event("DISCONNECT", client.id, "")
			}
		case msg := <-h.direct:
			if _, ok := h.clients[msg.client]; ok {
				h.deliver(msg.client, msg.payload)
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				h.deliver(client, payload)
			}
		}
	}
}

// deliver queues payload for client, dropping clients that cannot keep up.
func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		close(client.send)
		delete(h.clients, client)
		h.logger.Warn("dropping slow client %s", client.id)
	}
}

// Broadcast sends f to every connected viewer. It is meant to be used as the
// session's publish hook.
func (h *Hub) Broadcast(f session.Frame) {
	payload, err := json.Marshal(Message{Type: MessageFrame, Frame: &f})
	if err != nil {
		h.logger.Error("failed to encode frame: %v", err)
		return
	}
	select {
	case h.broadcast <- payload:
	case <-h.done:
	}
}

func (h *Hub) sendTo(client *Client, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode %s message: %v", msg.Type, err)
		return
	}
	select {
	case h.direct <- directMessage{client: client, payload: payload}:
	case <-h.done:
	}
}

// ServeHTTP upgrades the request to a WebSocket and starts the client pumps.
// The new client receives the current frame before any broadcast.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	frame, err := h.ctrl.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	initial, err := json.Marshal(Message{Type: MessageFrame, Frame: &frame})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed: %v", err)
		return
	}
	client := newClient(h, conn)
	client.send <- initial

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

// Handler returns the HTTP routes served by the hub.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		frame, err := h.ctrl.Snapshot(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, "ok generation=%d running=%v\n", frame.Generation, frame.Running)
	})
	return mux
}
