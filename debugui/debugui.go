// Package debugui provides a Dear ImGui inspector overlay for a running
// session. Windows are registered as Items and queued once per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/session"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should stop forwarding keys to the game while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the set of debug windows drawn over the game.
type Overlay struct {
	items []Item
	input InputState
}

// NewOverlay creates an overlay with the standard windows for c: the grid
// inspector and the command stats window.
func NewOverlay(c *session.Controller, timer *FrameTimer) *Overlay {
	o := &Overlay{}
	inspector := NewGridInspector()
	stats := NewCommandStatsWindow(120)

	o.Add(Item{Render: func() { inspector.Render(c) }})
	o.Add(Item{Render: func() { stats.Render(c, timer.Last()) }})
	return o
}

// Add registers a window.
func (o *Overlay) Add(item Item) {
	o.items = append(o.items, item)
}

// Len returns the number of registered windows.
func (o *Overlay) Len() int {
	return len(o.items)
}

// Input returns the capture state read by the last Queue.
func (o *Overlay) Input() InputState {
	return o.input
}

// Queue updates the input capture state and defers every window's render
// function so it runs after the frame's commands are applied.
func (o *Overlay) Queue(cmds *session.Commands) {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	o.queueItems(cmds)
}

func (o *Overlay) queueItems(cmds *session.Commands) {
	for _, item := range o.items {
		cmds.Defer(item.Render)
	}
}
