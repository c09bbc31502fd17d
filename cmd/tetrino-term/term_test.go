package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/session"
	"github.com/plus3/tetrino/tetrino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulationScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 20)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want session.Command
		ok   bool
	}{
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), session.MoveLeft, true},
		{"right arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), session.MoveRight, true},
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), session.SoftDrop, true},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), session.Rotate, true},
		{"vi left", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), session.MoveLeft, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), session.Rotate, true},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := keyCommand(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, cmd)
			}
		})
	}

	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)))
}

func TestRendererDrawsBoard(t *testing.T) {
	screen := simulationScreen(t)
	r := NewRenderer(screen)

	r.Render(&session.Frame{
		Cols:     4,
		Rows:     3,
		CellSize: 1,
		Active:   []session.Block{{Cell: tetrino.Point{X: 1, Y: 0}}},
		Fossils:  []session.Block{{Cell: tetrino.Point{X: 3, Y: 2}}},
		Pieces:   2,
	})

	assert.Equal(t, '─', runeAt(screen, 0, 0))
	assert.Equal(t, '│', runeAt(screen, 0, 1))
	assert.Equal(t, '│', runeAt(screen, 9, 2))

	// Cell (1,0) covers terminal columns 3 and 4 of row 1.
	assert.Equal(t, '█', runeAt(screen, 3, 1))
	assert.Equal(t, '█', runeAt(screen, 4, 1))
	assert.Equal(t, ' ', runeAt(screen, 5, 1))

	assert.Equal(t, '█', runeAt(screen, 7, 3))
	assert.Equal(t, 'p', runeAt(screen, 0, 5))
}

func TestReadInputFeedsCommands(t *testing.T) {
	screen := simulationScreen(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan session.Command, 4)
	done := make(chan struct{})
	go func() {
		readInput(ctx, screen, input, cancel)
		close(done)
	}()

	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	assert.Equal(t, session.MoveLeft, <-input)
	assert.Equal(t, session.Rotate, <-input)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("readInput did not stop on quit")
	}
	assert.Error(t, ctx.Err())
}

func TestReadInputQuitsWithFullChannel(t *testing.T) {
	screen := simulationScreen(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Nobody reads input, as after the game tops out.
	input := make(chan session.Command, 16)
	done := make(chan struct{})
	go func() {
		readInput(ctx, screen, input, cancel)
		close(done)
	}()

	for i := 0; i < cap(input); i++ {
		screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
		require.Eventually(t, func() bool { return len(input) == i+1 }, time.Second, time.Millisecond)
	}

	// The buffer is full; further keys must not stall the poll loop.
	for i := 0; i < 4; i++ {
		screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
		time.Sleep(5 * time.Millisecond)
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("readInput did not stop on quit with %d commands queued", len(input))
	}
	assert.Len(t, input, 16)
	assert.Error(t, ctx.Err())
}
