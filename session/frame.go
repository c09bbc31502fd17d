package session

import (
	"image/color"

	"github.com/plus3/tetrino/tetrino"
)

// Rect is a pixel-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// Block is one drawable grid cell.
type Block struct {
	Cell  tetrino.Point
	Rect  Rect
	Color color.RGBA
}

// Frame is everything a renderer needs after a committed mutation.
type Frame struct {
	Cols, Rows int
	CellSize   int

	Active  []Block
	Fossils []Block

	Over          bool
	Pieces        int
	RowsCollapsed int
}

// Width returns the board width in pixels.
func (f *Frame) Width() int {
	return f.Cols * f.CellSize
}

// Height returns the board height in pixels.
func (f *Frame) Height() int {
	return f.Rows * f.CellSize
}

// Renderer draws frames. It is called on the controller's goroutine.
type Renderer interface {
	Render(frame *Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(frame *Frame)

// Render calls f(frame).
func (f RendererFunc) Render(frame *Frame) {
	f(frame)
}

func cellRect(p tetrino.Point, size int) Rect {
	return Rect{X: p.X * size, Y: p.Y * size, W: size, H: size}
}
