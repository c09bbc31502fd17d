package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetrino/debugui"
	debugui_ebiten "github.com/plus3/tetrino/debugui/ebiten"
	"github.com/plus3/tetrino/session"
	"github.com/plus3/tetrino/tetrino"
	"github.com/sirupsen/logrus"
)

const statusHeight = 20

var (
	background = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	gridLine   = color.RGBA{R: 40, G: 40, B: 52, A: 255}
)

// keyBindings maps keys to commands. Held keys repeat after a short delay.
var keyBindings = []struct {
	keys []ebiten.Key
	cmd  session.Command
}{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, session.MoveLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, session.MoveRight},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, session.SoftDrop},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace}, session.Rotate},
}

// Game implements ebiten.Game on top of a session controller.
type Game struct {
	cfg  tetrino.Config
	log  logrus.FieldLogger
	ctrl *session.Controller
	cmds *session.Commands

	// frame is the latest committed state pushed by the controller.
	frame *session.Frame

	backend *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
	timer   *debugui.FrameTimer
}

func NewGame(cfg tetrino.Config, log logrus.FieldLogger) *Game {
	return &Game{
		cfg:  cfg,
		log:  log,
		cmds: session.NewCommands(),
	}
}

// EnableDebug draws the inspector overlay through backend.
func (g *Game) EnableDebug(backend *debugui_ebiten.ImguiBackend, timer *debugui.FrameTimer) {
	g.backend = backend
	g.timer = timer
}

// Restart replaces the current session with a fresh one.
func (g *Game) Restart() error {
	ctrl, err := session.New(g.cfg,
		session.WithLogger(g.log),
		session.WithRenderer(session.RendererFunc(func(f *session.Frame) {
			g.frame = f
		})),
	)
	if err != nil {
		return err
	}

	g.ctrl = ctrl
	if g.backend != nil {
		g.overlay = debugui.NewOverlay(ctrl, g.timer)
	}
	return ctrl.Start()
}

func (g *Game) boardSize() (int, int) {
	size := g.cfg.CellPixelSize
	return g.cfg.GridCols * size, g.cfg.GridRows*size + statusHeight
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.backend != nil {
		g.timer.Tick()
		g.backend.BeginFrame()
		defer g.backend.EndFrame()
	}

	if g.ctrl.Over() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := g.Restart(); err != nil {
				g.log.WithError(err).Error("restart failed")
			}
		}
	} else if g.overlay == nil || !g.overlay.Input().WantCaptureKeyboard {
		g.readInput()
	}

	if g.overlay != nil {
		g.overlay.Queue(g.cmds)
	}
	g.cmds.Flush(g.ctrl)
	g.ctrl.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) readInput() {
	for _, binding := range keyBindings {
		for _, key := range binding.keys {
			if repeating(inpututil.KeyPressDuration(key)) {
				g.cmds.Push(binding.cmd)
				break
			}
		}
	}
}

// repeating reports whether a key held for d ticks should fire this tick.
func repeating(d int) bool {
	const delay, interval = 15, 4
	return d == 1 || (d >= delay && (d-delay)%interval == 0)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if f := g.frame; f != nil {
		for x := 0; x <= f.Cols; x++ {
			vector.StrokeLine(screen, float32(x*f.CellSize), 0, float32(x*f.CellSize), float32(f.Height()), 1, gridLine, false)
		}
		for y := 0; y <= f.Rows; y++ {
			vector.StrokeLine(screen, 0, float32(y*f.CellSize), float32(f.Width()), float32(y*f.CellSize), 1, gridLine, false)
		}

		drawBlocks(screen, f.Fossils)
		drawBlocks(screen, f.Active)

		status := fmt.Sprintf("pieces %d  rows %d", f.Pieces, f.RowsCollapsed)
		if f.Over {
			status = "topped out, R to restart"
		}
		ebitenutil.DebugPrintAt(screen, status, 4, f.Height()+2)
	}

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func drawBlocks(screen *ebiten.Image, blocks []session.Block) {
	for _, b := range blocks {
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.X+1), float32(r.Y+1), float32(r.W-2), float32(r.H-2), b.Color, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.boardSize()
}
