package tetrino

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCatalog is returned when a catalog has no usable shapes.
var ErrEmptyCatalog = errors.New("shape catalog is empty")

// Shape is a named, ordered list of rotation states. Each rotation state is a
// set of offsets anchored at (0,0).
type Shape struct {
	Name      string
	Rotations [][]Offset
}

// Catalog is an immutable ordered collection of shapes. It copies its input
// on construction and copies again on every read, so callers can never
// mutate the shared rotation tables.
type Catalog struct {
	shapes []Shape
}

// NewCatalog validates and deep-copies the given shapes.
func NewCatalog(shapes ...Shape) (*Catalog, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{shapes: make([]Shape, len(shapes))}
	for i, shape := range shapes {
		if len(shape.Rotations) == 0 {
			return nil, fmt.Errorf("shape %d (%q) has no rotations", i, shape.Name)
		}

		rotations := make([][]Offset, len(shape.Rotations))
		for r, offsets := range shape.Rotations {
			if len(offsets) == 0 {
				return nil, fmt.Errorf("shape %d (%q) rotation %d has no cells", i, shape.Name, r)
			}
			rotations[r] = cloneOffsets(offsets)
		}

		c.shapes[i] = Shape{Name: shape.Name, Rotations: rotations}
	}

	return c, nil
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Name returns the name of the shape at index.
func (c *Catalog) Name(shape int) string {
	return c.shapes[shape].Name
}

// RotationCount returns how many rotation states the shape has.
func (c *Catalog) RotationCount(shape int) int {
	return len(c.shapes[shape].Rotations)
}

// Offsets returns a fresh copy of the offsets of one rotation state.
func (c *Catalog) Offsets(shape, rotation int) []Offset {
	return cloneOffsets(c.shapes[shape].Rotations[rotation])
}

// Index returns the index of the shape with the given name (case-insensitive).
func (c *Catalog) Index(name string) (int, bool) {
	for i, shape := range c.shapes {
		if strings.EqualFold(shape.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Subset returns a new catalog holding only the named shapes, in the order
// they are given.
func (c *Catalog) Subset(names ...string) (*Catalog, error) {
	shapes := make([]Shape, 0, len(names))
	for _, name := range names {
		idx, ok := c.Index(name)
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", name)
		}
		shapes = append(shapes, c.shapes[idx])
	}
	return NewCatalog(shapes...)
}

// DefaultCatalog returns the seven standard tetrominoes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultShapes...)
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}

var defaultShapes = []Shape{
	{Name: "I", Rotations: [][]Offset{
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
	}},
	{Name: "O", Rotations: [][]Offset{
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	}},
	{Name: "T", Rotations: [][]Offset{
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	}},
	{Name: "S", Rotations: [][]Offset{
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
	}},
	{Name: "Z", Rotations: [][]Offset{
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
	}},
	{Name: "J", Rotations: [][]Offset{
		{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
	}},
	{Name: "L", Rotations: [][]Offset{
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	}},
}
