package term

import (
	"github.com/gdamore/tcell/v2"

	"pkt.systems/tpp"
)

// classify maps a tcell event to an operator action. Any key without
// an explicit binding advances, so an audience member mashing the
// keyboard never wedges a presentation.
func classify(ev tcell.Event) (tpp.Action, rune) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		return tpp.ActionResize, 0
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return tpp.ActionQuit, 0
		case tcell.KeyLeft, tcell.KeyUp, tcell.KeyPgUp, tcell.KeyBackspace, tcell.KeyBackspace2:
			return tpp.ActionRetreat, 0
		case tcell.KeyHome:
			return tpp.ActionFirst, 0
		case tcell.KeyRune:
			switch r := e.Rune(); r {
			case 'q', 'Q':
				return tpp.ActionQuit, 0
			case 'b', 'p':
				return tpp.ActionRetreat, 0
			case 'r':
				return tpp.ActionReload, 0
			case 's':
				return tpp.ActionFirst, 0
			case 'h', '?':
				return tpp.ActionHelp, 0
			case 'e':
				return tpp.ActionEdit, 0
			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				return tpp.ActionJump, r
			}
		}
		return tpp.ActionAdvance, 0
	default:
		return tpp.ActionAdvance, 0
	}
}
