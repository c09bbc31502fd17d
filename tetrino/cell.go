// Package tetrino implements the board and piece state machine of a
// falling-block puzzle game: collision checks, active-shape tracking,
// fossilization and row collapse.
//
// All coordinates are (column, row) pairs. Row 0 is the top of the grid and
// rows grow downwards, so a falling piece increases its Y.
package tetrino

// CellState is the occupancy of a single grid cell.
type CellState uint8

const (
	// Empty cells hold nothing.
	Empty CellState = iota
	// Active cells are covered by the currently falling piece.
	Active
	// Fossil cells belong to a piece that can no longer move.
	Fossil
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Active:
		return "active"
	case Fossil:
		return "fossil"
	default:
		return "unknown"
	}
}

// glyph is the single-character form used by String and ParseLayout.
func (s CellState) glyph() byte {
	switch s {
	case Active:
		return '@'
	case Fossil:
		return '#'
	default:
		return '.'
	}
}

// Offset is a cell position relative to a shape's local origin.
type Offset struct {
	X, Y int
}

// Point is an absolute grid position.
type Point struct {
	X, Y int
}

// Add translates the offset by the given origin.
func (o Offset) Add(x, y int) Point {
	return Point{X: x + o.X, Y: y + o.Y}
}

func cloneOffsets(offsets []Offset) []Offset {
	if offsets == nil {
		return nil
	}
	out := make([]Offset, len(offsets))
	copy(out, offsets)
	return out
}
