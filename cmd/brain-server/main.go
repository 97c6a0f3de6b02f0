// Command brain-server runs the automaton headless and streams it to
// WebSocket viewers.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"brains3d/internal/platform/kvflag"
	"brains3d/internal/platform/logger"
	"brains3d/internal/session"
	"brains3d/internal/sims/briansbrain"
	"brains3d/internal/stream"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	fps := flag.Int("fps", 30, "session ticks per second")
	var overrides kvflag.List
	flag.Var(&overrides, "set", "simulation parameter in key=value form (w, h, d, p, interval, seed, running; repeatable)")
	flag.Parse()

	log := logger.NewLogger()

	cfg := briansbrain.FromMap(parseOverrides(overrides, log))
	engine, err := briansbrain.New(cfg)
	if err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frameRate := session.DefaultFrameRate
	if *fps > 0 {
		frameRate = time.Second / time.Duration(*fps)
	}

	var hub *stream.Hub
	sess := session.New(engine, session.Options{
		FrameRate: frameRate,
		Publish:   func(f session.Frame) { hub.Broadcast(f) },
		Logger:    log,
	})
	hub = stream.NewHub(sess, log)

	srv := &http.Server{Addr: *addr, Handler: hub.Handler()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return sess.Run(gctx)
	})
	g.Go(func() error {
		log.Info("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped: %v", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func parseOverrides(list kvflag.List, log *logger.Logger) map[string]string {
	values, malformed := list.Parse()
	for _, kv := range malformed {
		log.Warn("ignoring malformed override %q", kv)
	}
	return values
}
