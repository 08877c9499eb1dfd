package tpp

import "strings"

// Unit is one character plus its resolved style snapshot, the atomic
// element of styled line wrapping. Units are ephemeral: they are
// rebuilt for every rendered line.
type Unit struct {
	R     rune
	Style *StyleState
}

// BuildUnits expands a token sequence into units, starting from the
// caller-supplied base style. Literal characters share the snapshot
// that was current when they were scanned; markup tokens advance the
// state and emit nothing.
func BuildUnits(toks []Token, base *StyleState) []Unit {
	m := newStyleMachine(base)
	var units []Unit
	for _, tok := range toks {
		if tok.Kind != TokenText {
			m.apply(tok)
			continue
		}
		for _, r := range tok.Text {
			units = append(units, Unit{R: r, Style: m.cur})
		}
	}
	return units
}

// Segment is a maximal run of units sharing one style snapshot, the
// atomic element handed to a rendering backend.
type Segment struct {
	Style *StyleState
	Text  string
}

// CompactSegments merges consecutive units whose StyleState is the
// same snapshot. Identity, not field equality, is the merge rule:
// every markup transition allocates a new snapshot, so even a no-op
// toggle starts a new segment. Backends apply one style change per
// segment rather than per character.
func CompactSegments(units []Unit) []Segment {
	if len(units) == 0 {
		return nil
	}
	var segs []Segment
	var b strings.Builder
	cur := units[0].Style
	for _, u := range units {
		if u.Style != cur {
			segs = append(segs, Segment{Style: cur, Text: b.String()})
			b.Reset()
			cur = u.Style
		}
		b.WriteRune(u.R)
	}
	segs = append(segs, Segment{Style: cur, Text: b.String()})
	return segs
}
