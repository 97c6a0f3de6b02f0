package stream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"brains3d/internal/core"
	"brains3d/internal/session"
	"brains3d/internal/sims/briansbrain"
)

type fixture struct {
	server *httptest.Server
	cancel context.CancelFunc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g, err := briansbrain.NewGrid(3, 3, 3, 0, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	e, err := briansbrain.NewEngine(g, 100, false)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var hub *Hub
	sess := session.New(e, session.Options{
		FrameRate: 5 * time.Millisecond,
		Publish:   func(f session.Frame) { hub.Broadcast(f) },
	})
	hub = NewHub(sess, nil)
	go hub.Run(ctx)
	go sess.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	f := &fixture{server: srv, cancel: cancel}
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return f
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func readFrame(t *testing.T, conn *websocket.Conn) session.Frame {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != MessageFrame || msg.Frame == nil {
		t.Fatalf("expected frame, got %+v", msg)
	}
	return *msg.Frame
}

func send(t *testing.T, conn *websocket.Conn, cmd Command) {
	t.Helper()
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("write %+v: %v", cmd, err)
	}
}

func TestViewerReceivesFramesAndControlsSession(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	first := readFrame(t, conn)
	if first.Generation != 0 || first.Census.Ready != 27 || len(first.Cells) != 27 {
		t.Fatalf("initial frame = %+v", first)
	}

	send(t, conn, Command{Type: "toggle", X: 0, Y: 0, Z: 0})
	frame := readFrame(t, conn)
	if s, _ := frame.StateAt(0, 0, 0); s != briansbrain.Firing {
		t.Fatalf("toggled cell = %v, want firing", s)
	}

	send(t, conn, Command{Type: "toggle", X: 3, Y: 0, Z: 0})
	msg := readMessage(t, conn)
	if msg.Type != MessageError || !strings.Contains(msg.Error, "out of bounds") {
		t.Fatalf("expected out of bounds error, got %+v", msg)
	}

	// Unknown commands are dropped without a reply.
	send(t, conn, Command{Type: "bogus"})
	send(t, conn, Command{Type: "step"})
	frame = readFrame(t, conn)
	if frame.Generation != 1 {
		t.Fatalf("generation after step = %d, want 1", frame.Generation)
	}
	if s, _ := frame.StateAt(0, 0, 0); s != briansbrain.Refractory {
		t.Fatalf("stepped cell = %v, want refractory", s)
	}

	send(t, conn, Command{Type: "snapshot"})
	frame = readFrame(t, conn)
	if frame.Generation != 1 {
		t.Fatalf("snapshot generation = %d, want 1", frame.Generation)
	}

	send(t, conn, Command{Type: "pause"})
	frame = readFrame(t, conn)
	if !frame.Running {
		t.Fatal("pause command should have started the paused session")
	}
}

func TestBroadcastReachesAllViewers(t *testing.T) {
	f := newFixture(t)
	a := f.dial(t)
	b := f.dial(t)
	readFrame(t, a)
	readFrame(t, b)

	send(t, a, Command{Type: "toggle", X: 1, Y: 1, Z: 1})
	for _, conn := range []*websocket.Conn{a, b} {
		frame := readFrame(t, conn)
		if s, _ := frame.StateAt(1, 1, 1); s != briansbrain.Firing {
			t.Fatalf("viewer saw %v for toggled cell", s)
		}
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	resp, err := http.Get(f.server.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "generation=0") {
		t.Fatalf("body = %q", body)
	}
}
