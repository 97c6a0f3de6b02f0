//go:build ebiten

package app

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"brains3d/internal/render"
	"brains3d/internal/sims/briansbrain"
	"brains3d/internal/ui"
)

// Game adapts a Brian's Brain engine to the ebiten.Game interface. ebiten
// calls Update and Draw from a single goroutine, which is the only place the
// engine is touched.
type Game struct {
	engine  *briansbrain.Engine
	painter *render.LayerPainter
	hud     *ui.HUD

	start    time.Time
	hudWidth int
	cells    []briansbrain.CellState
}

// New constructs a Game for the provided engine.
func New(engine *briansbrain.Engine, cfg *Config) *Game {
	layout := render.NewLayout(engine.Grid().Size(), cfg.Scale)
	return &Game{
		engine:   engine,
		painter:  render.NewLayerPainter(layout),
		hud:      ui.NewHUD(engine, cfg.HUDWidth),
		start:    time.Now(),
		hudWidth: cfg.HUDWidth,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.engine.ToggleRunning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.engine.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.ResetGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.engine.ResetWithSeed(time.Now().UnixNano())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if c, ok := g.painter.Layout().Pick(x, y); ok {
			if _, err := g.engine.ToggleCellAt(c.X, c.Y, c.Z); err != nil {
				log.Printf("toggle %+v: %v", c, err)
			}
		}
	}

	g.engine.Tick(time.Since(g.start).Seconds())
	g.hud.Update()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.cells = g.engine.Grid().CopyCells(g.cells)
	g.painter.Blit(screen, g.cells)
	w, _ := g.painter.Layout().ScreenSize()
	g.hud.Draw(screen, w)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Layout().ScreenSize()
	if h < ui.MinHeight && g.hudWidth > 0 {
		h = ui.MinHeight
	}
	return w + g.hudWidth, h
}
