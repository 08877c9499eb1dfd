package tpp

import (
	"sort"
	"strings"
)

// Color identifies one of the fixed presentation colors. The zero
// value means "no explicit color": the backend's ambient default.
type Color uint8

const (
	ColorUnset Color = iota
	ColorDefault
	ColorWhite
	ColorYellow
	ColorRed
	ColorGreen
	ColorBlue
	ColorCyan
	ColorMagenta
	ColorBlack
)

var colorsByName = map[string]Color{
	"default": ColorDefault,
	"white":   ColorWhite,
	"yellow":  ColorYellow,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"cyan":    ColorCyan,
	"magenta": ColorMagenta,
	"black":   ColorBlack,
}

// ColorByName resolves a color name from the source grammar.
func ColorByName(name string) (Color, bool) {
	c, ok := colorsByName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ColorNames returns the valid color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(colorsByName))
	for name := range colorsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StyleState is an immutable snapshot of the inline style at one point
// in a line. Markup tokens never mutate a snapshot in place: every
// transition allocates a fresh value, so two units rendered under the
// same unchanged state share the same *StyleState. Segment compaction
// relies on that pointer identity (see CompactSegments).
type StyleState struct {
	Bold      bool
	Underline bool
	Reverse   bool
	Color     Color
}

// withAttr returns a new snapshot with one attribute set. Setting an
// attribute to its current value still yields a distinct snapshot.
func (s *StyleState) withAttr(attr Attr, on bool) *StyleState {
	next := *s
	switch attr {
	case AttrBold:
		next.Bold = on
	case AttrUnderline:
		next.Underline = on
	case AttrReverse:
		next.Reverse = on
	}
	return &next
}

// withColor returns a new snapshot with the given color active.
func (s *StyleState) withColor(c Color) *StyleState {
	next := *s
	next.Color = c
	return &next
}

// styleMachine applies markup tokens to a running style, maintaining
// the color nesting stack. Popping an empty stack leaves the current
// color unchanged; it is never an error.
type styleMachine struct {
	cur   *StyleState
	stack []Color
}

func newStyleMachine(base *StyleState) *styleMachine {
	if base == nil {
		base = &StyleState{}
	}
	return &styleMachine{cur: base}
}

func (m *styleMachine) apply(tok Token) {
	switch tok.Kind {
	case TokenToggle:
		m.cur = m.cur.withAttr(tok.Attr, tok.On)
	case TokenColorPush:
		m.stack = append(m.stack, m.cur.Color)
		m.cur = m.cur.withColor(tok.Color)
	case TokenColorPop:
		if n := len(m.stack); n > 0 {
			m.cur = m.cur.withColor(m.stack[n-1])
			m.stack = m.stack[:n-1]
		}
	}
}
