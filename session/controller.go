// Package session drives one game: it owns the grid and the falling piece,
// turns input commands into legality-gated moves and runs the fall loop.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tetrino/tetrino"
	"github.com/sirupsen/logrus"
)

// ErrToppedOut is returned once a new piece cannot be placed at the spawn
// origin.
var ErrToppedOut = errors.New("spawn origin is blocked")

// StepResult reports what a fall step did.
type StepResult uint8

const (
	// StepIdle means there was no piece to move.
	StepIdle StepResult = iota
	// StepMoved means the piece fell one row.
	StepMoved
	// StepFossilized means the piece fossilized and a new one spawned.
	StepFossilized
	// StepToppedOut means the piece fossilized and the next could not spawn.
	StepToppedOut
)

func (r StepResult) String() string {
	switch r {
	case StepMoved:
		return "moved"
	case StepFossilized:
		return "fossilized"
	case StepToppedOut:
		return "topped out"
	default:
		return "idle"
	}
}

// Picker chooses the shape and initial rotation of the next piece.
type Picker func(catalog *tetrino.Catalog) (shape, rotation int)

// RandomPicker picks a uniformly random shape and rotation.
func RandomPicker(rng *rand.Rand) Picker {
	return func(catalog *tetrino.Catalog) (int, int) {
		shape := rng.IntN(catalog.Len())
		return shape, rng.IntN(catalog.RotationCount(shape))
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithRenderer sets the collaborator notified after every committed mutation.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) {
		c.renderer = r
	}
}

// WithPicker overrides how new pieces are chosen.
func WithPicker(p Picker) Option {
	return func(c *Controller) {
		c.pick = p
	}
}

// WithSessionID sets the id attached to log lines and stats.
func WithSessionID(id uuid.UUID) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// Controller owns one Grid and the active Piece. It is not safe for
// concurrent use: drive it either through Run or from a single frame loop.
type Controller struct {
	cfg      tetrino.Config
	id       uuid.UUID
	grid     *tetrino.Grid
	piece    *tetrino.Piece
	pick     Picker
	log      logrus.FieldLogger
	renderer Renderer
	timer    *FallTimer

	started       bool
	over          bool
	pieces        int
	rowsCollapsed int
	stats         []*commandStatsInternal
}

// New validates cfg and creates a controller with an empty grid. Call Start
// (or Run) to spawn the first piece.
func New(cfg tetrino.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	grid, err := tetrino.NewGrid(cfg.GridCols, cfg.GridRows)
	if err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		cfg:   cfg,
		id:    uuid.New(),
		grid:  grid,
		pick:  RandomPicker(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		log:   discard,
		timer: NewFallTimer(cfg.FallInterval),
		stats: newCommandStats(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.WithField("session", c.id.String())
	return c, nil
}

// ID returns the session id.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() tetrino.Config {
	return c.cfg
}

// Grid returns the board. Callers must treat it as read-only.
func (c *Controller) Grid() *tetrino.Grid {
	return c.grid
}

// Piece returns the active piece, or nil before Start and after top-out.
// Callers must treat it as read-only.
func (c *Controller) Piece() *tetrino.Piece {
	return c.piece
}

// Over reports whether the game has topped out.
func (c *Controller) Over() bool {
	return c.over
}

// Start spawns the first piece. Calling it again is a no-op.
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	c.started = true

	c.log.WithFields(logrus.Fields{
		"cols": c.cfg.GridCols,
		"rows": c.cfg.GridRows,
	}).Info("session started")

	if !c.spawn() {
		return ErrToppedOut
	}
	return nil
}

// Apply performs one gated command. Illegal moves are silently ignored and
// reported as false.
func (c *Controller) Apply(cmd Command) bool {
	if cmd == Fall {
		res := c.Step()
		return res != StepIdle
	}
	if cmd >= commandCount {
		return false
	}

	start := time.Now()
	applied := c.apply(cmd)
	c.stats[cmd].record(time.Since(start), applied)
	return applied
}

func (c *Controller) apply(cmd Command) bool {
	if c.over || c.piece == nil {
		return false
	}

	switch cmd {
	case MoveLeft:
		return c.translate(-1, 0)
	case MoveRight:
		return c.translate(1, 0)
	case SoftDrop:
		return c.translate(0, 1)
	case Rotate:
		p := c.piece
		next := p.NextRotationOffsets()
		if !c.grid.IsMoveLegal(p.X, p.Y, next) {
			return false
		}
		p.Rotate()
		c.grid.PlaceActive(p.X, p.Y, next)
		c.render()
		return true
	}
	return false
}

func (c *Controller) translate(dx, dy int) bool {
	p := c.piece
	offsets := p.CurrentOffsets()
	if !c.grid.IsMoveLegal(p.X+dx, p.Y+dy, offsets) {
		return false
	}

	p.X += dx
	p.Y += dy
	c.grid.PlaceActive(p.X, p.Y, offsets)
	c.render()
	return true
}

// Step is one fall step: move the piece down a row or, if it cannot move,
// fossilize it, collapse completed rows and spawn the next piece.
func (c *Controller) Step() StepResult {
	start := time.Now()
	res := c.step()
	c.stats[Fall].record(time.Since(start), res != StepIdle)
	return res
}

func (c *Controller) step() StepResult {
	if c.over || c.piece == nil {
		return StepIdle
	}

	if c.translate(0, 1) {
		return StepMoved
	}

	c.fossilize()
	if !c.spawn() {
		return StepToppedOut
	}
	return StepFossilized
}

// Advance feeds elapsed time to the controller's fall timer and runs every
// fall step that came due. A fossilization restarts the timer for the new
// piece and drops any remaining due steps.
func (c *Controller) Advance(dt time.Duration) StepResult {
	last := StepIdle
	for due := c.timer.Advance(dt); due > 0; due-- {
		last = c.Step()
		if last != StepMoved {
			break
		}
	}
	return last
}

func (c *Controller) fossilize() {
	p := c.piece
	c.grid.FossilizeTagged(p.X, p.Y, p.CurrentOffsets(), p.Color)
	c.piece = nil
	c.pieces++

	// The fall chain of this piece ends here.
	c.timer.Reset()

	log := c.log.WithFields(logrus.Fields{
		"shape": p.Name(),
		"x":     p.X,
		"y":     p.Y,
	})
	log.Debug("piece fossilized")

	if rows := c.grid.CollapseCompletedRows(); rows > 0 {
		c.rowsCollapsed += rows
		log.WithField("rows", rows).Info("rows collapsed")
	}
}

func (c *Controller) spawn() bool {
	shape, rotation := c.pick(c.cfg.Catalog)
	p := tetrino.NewPiece(c.cfg.Catalog, shape, rotation)
	p.X, p.Y = c.cfg.SpawnX, c.cfg.SpawnY
	p.Color = shape

	offsets := p.CurrentOffsets()
	if !c.grid.IsMoveLegal(p.X, p.Y, offsets) {
		c.over = true
		c.log.WithFields(logrus.Fields{
			"shape":  p.Name(),
			"pieces": c.pieces,
		}).Warn("topped out")
		c.render()
		return false
	}

	c.piece = p
	c.grid.PlaceActive(p.X, p.Y, offsets)
	c.timer.Reset()

	c.log.WithFields(logrus.Fields{
		"shape":    p.Name(),
		"rotation": p.Rotation(),
		"x":        p.X,
		"y":        p.Y,
	}).Debug("piece spawned")

	c.render()
	return true
}

// Frame builds the render view of the current state.
func (c *Controller) Frame() *Frame {
	size := c.cfg.CellPixelSize
	f := &Frame{
		Cols:          c.cfg.GridCols,
		Rows:          c.cfg.GridRows,
		CellSize:      size,
		Over:          c.over,
		Pieces:        c.pieces,
		RowsCollapsed: c.rowsCollapsed,
	}

	if c.piece != nil {
		colour := c.cfg.Colour(c.piece.Color)
		for _, p := range c.piece.Cells() {
			f.Active = append(f.Active, Block{Cell: p, Rect: cellRect(p, size), Color: colour})
		}
	}

	for _, p := range c.grid.FossilCells() {
		tag, _ := c.grid.Tag(p.X, p.Y)
		f.Fossils = append(f.Fossils, Block{Cell: p, Rect: cellRect(p, size), Color: c.cfg.Colour(tag)})
	}

	return f
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(c.Frame())
}
