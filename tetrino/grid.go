package tetrino

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/kamstrup/intmap"
)

// ErrInvalidDimensions is returned for grids with a non-positive side.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Grid is the sole authority over board occupancy. Cells are stored row-major
// but every method takes (column, row).
type Grid struct {
	cols  int
	rows  int
	cells []CellState

	// Colour tags of fossil cells, keyed by cell index.
	tags *intmap.Map[int, int]

	// Origin and offsets of the last PlaceActive call, used to erase the
	// active shape before it is drawn again.
	activeX, activeY int
	activeOffsets    []Offset
}

// NewGrid creates an empty grid of cols x rows cells.
func NewGrid(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}

	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]CellState, cols*rows),
		tags:  intmap.New[int, int](cols),
	}, nil
}

// Cols returns the grid width.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the grid height.
func (g *Grid) Rows() int {
	return g.rows
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

func (g *Grid) index(x, y int) int {
	return y*g.cols + x
}

// At returns the state of the cell at (x, y). Off-grid cells read as Empty.
func (g *Grid) At(x, y int) CellState {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[g.index(x, y)]
}

// Tag returns the colour tag of a fossil cell.
func (g *Grid) Tag(x, y int) (int, bool) {
	if !g.InBounds(x, y) || g.cells[g.index(x, y)] != Fossil {
		return 0, false
	}
	return g.tags.Get(g.index(x, y))
}

// IsMoveLegal reports whether a shape with the given offsets may sit at
// origin (x, y): every cell must be on the grid and not a fossil. Active
// cells never block, so a piece's own current position cannot reject its
// next one.
func (g *Grid) IsMoveLegal(x, y int, offsets []Offset) bool {
	for _, o := range offsets {
		p := o.Add(x, y)
		if !g.InBounds(p.X, p.Y) {
			return false
		}
		if g.cells[g.index(p.X, p.Y)] == Fossil {
			return false
		}
	}
	return true
}

// PlaceActive erases the previously placed active shape and marks the new
// one. Callers must check IsMoveLegal first; nothing is validated here.
func (g *Grid) PlaceActive(x, y int, offsets []Offset) {
	// Clear everything first, then set. A single pass would erase new cells
	// that overlap old ones.
	g.clearActive()

	for _, o := range offsets {
		p := o.Add(x, y)
		g.cells[g.index(p.X, p.Y)] = Active
	}

	g.activeX, g.activeY = x, y
	g.activeOffsets = cloneOffsets(offsets)
}

func (g *Grid) clearActive() {
	for _, o := range g.activeOffsets {
		p := o.Add(g.activeX, g.activeY)
		if !g.InBounds(p.X, p.Y) {
			continue
		}
		if idx := g.index(p.X, p.Y); g.cells[idx] == Active {
			g.cells[idx] = Empty
		}
	}
	g.activeOffsets = nil
}

// Fossilize fixes the given cells as fossils with a zero colour tag.
func (g *Grid) Fossilize(x, y int, offsets []Offset) {
	g.FossilizeTagged(x, y, offsets, 0)
}

// FossilizeTagged erases the active shape, then marks the given cells as
// fossils carrying tag. The active record is dropped so that the next
// PlaceActive starts from a clean slate. Cells that are already fossils keep
// the tag they were first given, which makes repeated calls idempotent.
func (g *Grid) FossilizeTagged(x, y int, offsets []Offset, tag int) {
	g.clearActive()

	for _, o := range offsets {
		p := o.Add(x, y)
		idx := g.index(p.X, p.Y)
		if g.cells[idx] == Fossil {
			continue
		}
		g.cells[idx] = Fossil
		g.tags.Put(idx, tag)
	}
}

// CollapseCompletedRows removes every row made entirely of fossils and
// inserts an empty row at the top for each one, scanning from the bottom.
// It returns the number of rows removed. It is meant to run right after
// fossilization, while no active shape is on the grid.
func (g *Grid) CollapseCompletedRows() int {
	collapsed := 0
	for y := g.rows - 1; y >= 0; {
		if !g.rowComplete(y) {
			y--
			continue
		}
		// Row y now holds what used to be above it, so look at it again.
		g.removeRow(y)
		collapsed++
	}
	return collapsed
}

func (g *Grid) rowComplete(y int) bool {
	for _, state := range g.cells[y*g.cols : (y+1)*g.cols] {
		if state != Fossil {
			return false
		}
	}
	return true
}

func (g *Grid) removeRow(y int) {
	copy(g.cells[g.cols:(y+1)*g.cols], g.cells[:y*g.cols])
	clear(g.cells[:g.cols])

	if g.tags.Len() == 0 {
		return
	}

	shifted := intmap.New[int, int](g.tags.Len())
	for idx, tag := range g.tags.All() {
		switch row := idx / g.cols; {
		case row < y:
			shifted.Put(idx+g.cols, tag)
		case row > y:
			shifted.Put(idx, tag)
		}
	}
	g.tags = shifted
}

// Cells iterates over every cell in row-major order.
func (g *Grid) Cells() iter.Seq2[Point, CellState] {
	return func(yield func(Point, CellState) bool) {
		for idx, state := range g.cells {
			if !yield(Point{X: idx % g.cols, Y: idx / g.cols}, state) {
				return
			}
		}
	}
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []CellState {
	row := make([]CellState, g.cols)
	copy(row, g.cells[y*g.cols:(y+1)*g.cols])
	return row
}

// ActiveCells returns the positions of all active cells in row-major order.
func (g *Grid) ActiveCells() []Point {
	return g.collect(Active)
}

// FossilCells returns the positions of all fossil cells in row-major order.
func (g *Grid) FossilCells() []Point {
	return g.collect(Fossil)
}

func (g *Grid) collect(want CellState) []Point {
	var out []Point
	for p, state := range g.Cells() {
		if state == want {
			out = append(out, p)
		}
	}
	return out
}

// String renders the grid one row per line: '.' empty, '@' active, '#' fossil.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for y := 0; y < g.rows; y++ {
		for _, state := range g.cells[y*g.cols : (y+1)*g.cols] {
			b.WriteByte(state.glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseLayout builds a grid from rows of '.' (empty) and '#' (fossil).
// Blank lines and surrounding whitespace are ignored.
func ParseLayout(layout string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(layout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidDimensions)
	}

	g, err := NewGrid(len(lines[0]), len(lines))
	if err != nil {
		return nil, err
	}

	for y, line := range lines {
		if len(line) != g.cols {
			return nil, fmt.Errorf("layout row %d has %d cells, want %d", y, len(line), g.cols)
		}
		for x := 0; x < len(line); x++ {
			switch line[x] {
			case '.':
			case '#':
				g.cells[g.index(x, y)] = Fossil
				g.tags.Put(g.index(x, y), 0)
			default:
				return nil, fmt.Errorf("layout row %d: unexpected %q at column %d", y, line[x], x)
			}
		}
	}

	return g, nil
}
