package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/session"
)

// keyCommand maps a key event to a game command.
func keyCommand(ev *tcell.EventKey) (session.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return session.MoveLeft, true
	case tcell.KeyRight:
		return session.MoveRight, true
	case tcell.KeyDown:
		return session.SoftDrop, true
	case tcell.KeyUp:
		return session.Rotate, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			return session.MoveLeft, true
		case 'd', 'l':
			return session.MoveRight, true
		case 's', 'j':
			return session.SoftDrop, true
		case 'w', 'k', ' ':
			return session.Rotate, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

// readInput forwards key events to input until the player quits or the
// screen is finalized. It calls quit on exit.
func readInput(ctx context.Context, screen tcell.Screen, input chan<- session.Command, quit context.CancelFunc) {
	defer quit()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if isQuit(ev) {
				return
			}
			cmd, ok := keyCommand(ev)
			if !ok {
				continue
			}
			// Keys pressed while nothing is reading input (after top-out)
			// are dropped so quit keys are still polled.
			select {
			case input <- cmd:
			case <-ctx.Done():
				return
			default:
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
