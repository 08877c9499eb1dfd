package tpp

import (
	"strconv"
	"strings"
	"time"
)

// pauseMarker suspends automatic line advancement until the next
// operator or timer tick.
const pauseMarker = "---"

// defaultDateLayout renders "--date today" without an explicit layout.
const defaultDateLayout = "January 2, 2006"

// Dispatcher classifies raw document lines and invokes the matching
// backend operation. Classification is a fixed, ordered prefix table:
// the first matching entry wins, and a line matching nothing is body
// text. Unknown "--" lines therefore print literally instead of being
// rejected; the grammar is deliberately permissive.
type Dispatcher struct {
	backend Backend
	now     func() time.Time
}

// NewDispatcher returns a Dispatcher driving the given backend.
func NewDispatcher(b Backend) *Dispatcher {
	return &Dispatcher{backend: b, now: time.Now}
}

type directive struct {
	prefix string // matched exactly when arg is false
	arg    bool
	fn     func(d *Dispatcher, arg string)
}

// The table preserves the original classification order. Exact-match
// entries carry no trailing space; argument entries match "<prefix> "
// and hand the remainder to fn.
var directives = []directive{
	{"--heading", true, func(d *Dispatcher, a string) { d.backend.Heading(a) }},
	{"--withborder", false, func(d *Dispatcher, _ string) { d.backend.WithBorder() }},
	{"--horline", false, func(d *Dispatcher, _ string) { d.backend.HorLine() }},
	{"--color", true, func(d *Dispatcher, a string) { d.backend.SetColor(a) }},
	{"--center", true, func(d *Dispatcher, a string) { d.backend.Center(a) }},
	{"--right", true, func(d *Dispatcher, a string) { d.backend.Right(a) }},
	{"--exec", true, func(d *Dispatcher, a string) { d.backend.Exec(a) }},
	{"--beginoutput", false, func(d *Dispatcher, _ string) { d.backend.BeginOutput() }},
	{"--endoutput", false, func(d *Dispatcher, _ string) { d.backend.EndOutput() }},
	{"--beginshelloutput", false, func(d *Dispatcher, _ string) { d.backend.BeginShellOutput() }},
	{"--endshelloutput", false, func(d *Dispatcher, _ string) { d.backend.EndShellOutput() }},
	{"--sleep", true, (*Dispatcher).sleep},
	{"--boldon", false, func(d *Dispatcher, _ string) { d.backend.Bold(true) }},
	{"--boldoff", false, func(d *Dispatcher, _ string) { d.backend.Bold(false) }},
	{"--revon", false, func(d *Dispatcher, _ string) { d.backend.Reverse(true) }},
	{"--revoff", false, func(d *Dispatcher, _ string) { d.backend.Reverse(false) }},
	{"--ulon", false, func(d *Dispatcher, _ string) { d.backend.Underline(true) }},
	{"--uloff", false, func(d *Dispatcher, _ string) { d.backend.Underline(false) }},
	{"--beginslideleft", false, func(d *Dispatcher, _ string) { d.backend.BeginSlide(DirLeft) }},
	{"--beginslideright", false, func(d *Dispatcher, _ string) { d.backend.BeginSlide(DirRight) }},
	{"--beginslidetop", false, func(d *Dispatcher, _ string) { d.backend.BeginSlide(DirTop) }},
	{"--beginslidebottom", false, func(d *Dispatcher, _ string) { d.backend.BeginSlide(DirBottom) }},
	{"--endslideleft", false, func(d *Dispatcher, _ string) { d.backend.EndSlide() }},
	{"--endslideright", false, func(d *Dispatcher, _ string) { d.backend.EndSlide() }},
	{"--endslidetop", false, func(d *Dispatcher, _ string) { d.backend.EndSlide() }},
	{"--endslidebottom", false, func(d *Dispatcher, _ string) { d.backend.EndSlide() }},
	{"--sethugefont", true, func(d *Dispatcher, a string) { d.backend.SetHugeFont(a) }},
	{"--huge", true, func(d *Dispatcher, a string) { d.backend.Huge(a) }},
	{"--footer", true, func(d *Dispatcher, a string) { d.backend.Footer(a) }},
	{"--header", true, func(d *Dispatcher, a string) { d.backend.Header(a) }},
	{"--title", true, func(d *Dispatcher, a string) { d.backend.Title(a) }},
	{"--author", true, func(d *Dispatcher, a string) { d.backend.Author(a) }},
	{"--date", true, (*Dispatcher).date},
	{"--bgcolor", true, func(d *Dispatcher, a string) { d.backend.BGColor(a) }},
	{"--fgcolor", true, func(d *Dispatcher, a string) { d.backend.FGColor(a) }},
	{"--include-file", true, func(d *Dispatcher, a string) { d.backend.IncludeFile(a) }},
}

// Dispatch classifies one raw line and invokes the corresponding
// backend operation. It reports whether the line was the pause marker;
// every other line, directive or not, returns false.
func (d *Dispatcher) Dispatch(line string) bool {
	if line == pauseMarker {
		return true
	}
	if strings.HasPrefix(line, commentPrefix) {
		return false
	}
	for _, dir := range directives {
		if dir.arg {
			if strings.HasPrefix(line, dir.prefix+" ") {
				dir.fn(d, line[len(dir.prefix)+1:])
				return false
			}
			continue
		}
		if line == dir.prefix {
			dir.fn(d, "")
			return false
		}
	}
	d.backend.PrintLine(line)
	return false
}

func (d *Dispatcher) sleep(arg string) {
	secs, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || secs <= 0 {
		return
	}
	d.backend.Sleep(time.Duration(secs) * time.Second)
}

// date handles the "today" expansions: bare "today" uses the default
// layout, "today <layout>" a caller-supplied Go time layout. Anything
// else passes through verbatim.
func (d *Dispatcher) date(arg string) {
	switch {
	case arg == "today":
		arg = d.now().Format(defaultDateLayout)
	case strings.HasPrefix(arg, "today "):
		arg = d.now().Format(strings.TrimSpace(arg[len("today "):]))
	}
	d.backend.Date(arg)
}
