package tetrino

import "strconv"

// Piece is one falling shape: an index into a catalog, a rotation index and
// an origin. X and Y are plain mutable state; legality is always checked
// against a Grid before they are changed.
type Piece struct {
	X, Y  int
	Color int

	catalog  *Catalog
	shape    int
	rotation int
}

// NewPiece creates a piece of the given shape. The rotation is normalized
// into the shape's rotation range. Panics if shape is not in the catalog.
func NewPiece(catalog *Catalog, shape, rotation int) *Piece {
	if shape < 0 || shape >= catalog.Len() {
		panic("shape index " + strconv.Itoa(shape) + " out of range")
	}

	n := catalog.RotationCount(shape)
	rotation %= n
	if rotation < 0 {
		rotation += n
	}

	return &Piece{
		catalog:  catalog,
		shape:    shape,
		rotation: rotation,
	}
}

// Shape returns the catalog index of the piece's shape.
func (p *Piece) Shape() int {
	return p.shape
}

// Name returns the catalog name of the piece's shape.
func (p *Piece) Name() string {
	return p.catalog.Name(p.shape)
}

// Rotation returns the current rotation index.
func (p *Piece) Rotation() int {
	return p.rotation
}

// CurrentOffsets returns a copy of the offsets of the current rotation.
func (p *Piece) CurrentOffsets() []Offset {
	return p.catalog.Offsets(p.shape, p.rotation)
}

// NextRotationOffsets returns a copy of the offsets the piece would occupy
// after one Rotate, without changing the piece.
func (p *Piece) NextRotationOffsets() []Offset {
	return p.catalog.Offsets(p.shape, p.nextRotation())
}

// Rotate advances the rotation index, wrapping to zero after the last state.
func (p *Piece) Rotate() {
	p.rotation = p.nextRotation()
}

func (p *Piece) nextRotation() int {
	next := p.rotation + 1
	if next >= p.catalog.RotationCount(p.shape) {
		next = 0
	}
	return next
}

// Cells returns the absolute grid cells covered by the piece.
func (p *Piece) Cells() []Point {
	offsets := p.catalog.Offsets(p.shape, p.rotation)
	cells := make([]Point, len(offsets))
	for i, o := range offsets {
		cells[i] = o.Add(p.X, p.Y)
	}
	return cells
}
