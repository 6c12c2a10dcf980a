package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/darkidle/internal/game"
)

// Action is what a key press asks the app to do.
type Action int

const (
	ActionNone Action = iota
	ActionDispatch
	ActionQuit
	ActionRedraw
)

// KeyAction maps a key press to an action and, for ActionDispatch, the game
// event. Digits 1-9 craft the item at that catalog position when it exists.
func KeyAction(ev *tcell.EventKey, itemIDs []string) (Action, game.Event) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, game.Event{}
	case tcell.KeyCtrlL:
		return ActionRedraw, game.Event{}
	case tcell.KeyRune:
	default:
		return ActionNone, game.Event{}
	}

	switch r := ev.Rune(); {
	case r == 'q' || r == 'Q':
		return ActionQuit, game.Event{}
	case r == ' ':
		return ActionDispatch, game.Hit()
	case r == 'h' || r == 'H':
		return ActionDispatch, game.Heal()
	case r == 'R':
		return ActionDispatch, game.Reset()
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i < len(itemIDs) {
			return ActionDispatch, game.Craft(itemIDs[i])
		}
	}
	return ActionNone, game.Event{}
}
