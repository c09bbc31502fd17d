package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/session"
)

// Each grid cell is drawn two terminal columns wide so blocks look square.
const cellWidth = 2

var borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) Render(f *session.Frame) {
	s := r.screen
	s.Clear()

	right := 1 + f.Cols*cellWidth
	bottom := 1 + f.Rows
	for y := 0; y <= bottom; y++ {
		s.SetContent(0, y, '│', nil, borderStyle)
		s.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := 0; x <= right; x++ {
		s.SetContent(x, 0, '─', nil, borderStyle)
		s.SetContent(x, bottom, '─', nil, borderStyle)
	}

	r.drawBlocks(f.Fossils)
	r.drawBlocks(f.Active)

	status := fmt.Sprintf("pieces %d  rows %d", f.Pieces, f.RowsCollapsed)
	if f.Over {
		status = "topped out, q to quit"
	}
	r.print(0, bottom+1, status)

	s.Show()
}

func (r *Renderer) drawBlocks(blocks []session.Block) {
	for _, b := range blocks {
		style := tcell.StyleDefault.Foreground(rgb(b.Color))
		x := 1 + b.Cell.X*cellWidth
		for i := 0; i < cellWidth; i++ {
			r.screen.SetContent(x+i, 1+b.Cell.Y, '█', nil, style)
		}
	}
}

func (r *Renderer) print(x, y int, text string) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, tcell.StyleDefault)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
