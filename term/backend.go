// Package term is the interactive character-cell backend, drawing
// slides on a terminal through tcell and reading operator key events.
package term

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"pkt.systems/tpp"
)

const (
	leftMargin = 2
	// rows reserved above and below the body: header row and border
	// on top, footer, border and status line at the bottom.
	topRows    = 2
	bottomRows = 3
)

// Backend renders pages on a tcell screen. All style and cursor state
// lives on the struct, so independent instances (one per controller,
// or several under test) never interfere.
type Backend struct {
	screen tcell.Screen
	runner tpp.CommandRunner

	width  int
	height int
	row    int

	// ambient style, toggled by --boldon and friends; body text
	// tokenization starts from a snapshot of these.
	bold      bool
	underline bool
	reverse   bool
	fg        tpp.Color
	bg        tpp.Color

	header string
	footer string

	border   bool
	hugeFont string

	inOutput bool
	sliding  bool
	slideDir tpp.Direction
	slideBuf []string
}

var _ tpp.Backend = (*Backend)(nil)

// New returns a Backend that will draw on a freshly initialized tcell
// screen once opened. The runner executes --exec commands and figlet
// for --huge text.
func New(runner tpp.CommandRunner) *Backend {
	if runner == nil {
		runner = tpp.NopRunner{}
	}
	return &Backend{runner: runner, hugeFont: "standard"}
}

// newWithScreen wires an explicit screen; tests pass a simulation
// screen here.
func newWithScreen(screen tcell.Screen, runner tpp.CommandRunner) *Backend {
	b := New(runner)
	b.screen = screen
	return b
}

// Open initializes the terminal surface. Failure to acquire a screen
// is a fatal setup error for the whole run.
func (b *Backend) Open() error {
	if b.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("term: new screen: %w", err)
		}
		b.screen = screen
	}
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	b.screen.HideCursor()
	b.width, b.height = b.screen.Size()
	return nil
}

// Close releases the terminal.
func (b *Backend) Close() error {
	b.screen.Fini()
	return nil
}

// NewPage clears the surface for a page replay. Ambient styles and
// page furniture (header, footer, background) survive; the border and
// any open output frame do not.
func (b *Backend) NewPage() {
	b.row = topRows
	b.border = false
	b.inOutput = false
	b.sliding = false
	b.slideBuf = nil
	b.screen.SetStyle(b.pageStyle())
	b.screen.Clear()
	b.drawFurniture()
}

// Refresh makes the drawn content visible.
func (b *Backend) Refresh() {
	b.screen.Show()
}

// resize picks up the new terminal geometry after a resize event.
func (b *Backend) resize() {
	b.screen.Sync()
	b.width, b.height = b.screen.Size()
}

func (b *Backend) pageStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(b.fg)).
		Background(tcellColor(b.bg))
}

func (b *Backend) bodyWidth() int {
	return b.width - 2*leftMargin
}

func (b *Backend) bodyBottom() int {
	return b.height - bottomRows
}

// base snapshots the ambient toggles as the wrap pipeline's starting
// style.
func (b *Backend) base() *tpp.StyleState {
	return &tpp.StyleState{
		Bold:      b.bold,
		Underline: b.underline,
		Reverse:   b.reverse,
		Color:     b.fg,
	}
}

// PrintLine renders one body line through the styled pipeline: one
// style application per compacted segment, wrap boundaries never
// separating a character from its snapshot.
func (b *Backend) PrintLine(line string) {
	if b.sliding {
		b.slideBuf = append(b.slideBuf, line)
		return
	}
	units := tpp.BuildUnits(tpp.Tokenize(line), b.base())
	for _, wrapped := range tpp.WrapUnits(units, b.bodyWidth()) {
		x := leftMargin
		for _, seg := range tpp.CompactSegments(wrapped) {
			x = b.drawSegment(x, b.row, seg)
		}
		if b.inOutput {
			b.drawFrameSides(b.row)
		}
		b.row++
	}
}

func (b *Backend) drawSegment(x, y int, seg tpp.Segment) int {
	style := b.styleFor(seg.Style)
	for _, r := range seg.Text {
		if y <= b.bodyBottom() && x < b.width-leftMargin {
			b.screen.SetContent(x, y, r, nil, style)
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (b *Backend) styleFor(s *tpp.StyleState) tcell.Style {
	fg := s.Color
	if fg == tpp.ColorUnset {
		fg = b.fg
	}
	return tcell.StyleDefault.
		Foreground(tcellColor(fg)).
		Background(tcellColor(b.bg)).
		Bold(s.Bold).
		Underline(s.Underline).
		Reverse(s.Reverse)
}

func (b *Backend) drawPlain(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= b.width {
			break
		}
		b.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// Heading draws bold centered text.
func (b *Backend) Heading(text string) {
	for _, line := range tpp.WrapPlain(tpp.StripMarkup(text), b.bodyWidth()) {
		b.drawCentered(b.row, line, b.pageStyle().Bold(true))
		b.row++
	}
}

func (b *Backend) drawCentered(y int, text string, style tcell.Style) {
	x := (b.width - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	b.drawPlain(x, y, text, style)
}

// WithBorder frames the page. The border is redrawn on resize but
// forgotten on the next page.
func (b *Backend) WithBorder() {
	b.border = true
	b.drawBorder()
}

func (b *Backend) drawBorder() {
	style := b.pageStyle()
	top, bottom := 1, b.height-2
	for x := 0; x < b.width; x++ {
		b.screen.SetContent(x, top, tcell.RuneHLine, nil, style)
		b.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := top; y <= bottom; y++ {
		b.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		b.screen.SetContent(b.width-1, y, tcell.RuneVLine, nil, style)
	}
	b.screen.SetContent(0, top, tcell.RuneULCorner, nil, style)
	b.screen.SetContent(b.width-1, top, tcell.RuneURCorner, nil, style)
	b.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, style)
	b.screen.SetContent(b.width-1, bottom, tcell.RuneLRCorner, nil, style)
}

// HorLine draws a horizontal rule across the body.
func (b *Backend) HorLine() {
	style := b.pageStyle()
	for x := leftMargin; x < b.width-leftMargin; x++ {
		b.screen.SetContent(x, b.row, tcell.RuneHLine, nil, style)
	}
	b.row++
}

// SetColor changes the ambient foreground, like --fgcolor. Unknown
// names are ignored.
func (b *Backend) SetColor(name string) { b.FGColor(name) }

// FGColor changes the ambient foreground color.
func (b *Backend) FGColor(name string) {
	if c, ok := tpp.ColorByName(name); ok {
		b.fg = c
	}
}

// BGColor changes the page background and repaints the furniture.
func (b *Backend) BGColor(name string) {
	if c, ok := tpp.ColorByName(name); ok {
		b.bg = c
		b.screen.SetStyle(b.pageStyle())
		b.screen.Fill(' ', b.pageStyle())
		b.drawFurniture()
		if b.border {
			b.drawBorder()
		}
	}
}

// Center draws stripped text centered on the page.
func (b *Backend) Center(text string) {
	for _, line := range tpp.WrapPlain(tpp.StripMarkup(text), b.bodyWidth()) {
		b.drawCentered(b.row, line, b.pageStyle())
		b.row++
	}
}

// Right draws stripped text aligned to the right edge of the body.
func (b *Backend) Right(text string) {
	for _, line := range tpp.WrapPlain(tpp.StripMarkup(text), b.bodyWidth()) {
		x := b.width - leftMargin - runewidth.StringWidth(line)
		if x < leftMargin {
			x = leftMargin
		}
		b.drawPlain(x, b.row, line, b.pageStyle())
		b.row++
	}
}

// Exec runs a command through the CommandRunner and prints its output.
// A failing command prints its error text; it never aborts the page.
func (b *Backend) Exec(cmdline string) {
	out, err := b.runner.Run(cmdline)
	if err != nil {
		b.PrintLine(fmt.Sprintf("%s: %v", cmdline, err))
		return
	}
	for _, line := range splitOutput(out) {
		b.PrintLine(line)
	}
}

func splitOutput(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// BeginOutput opens a framed output block.
func (b *Backend) BeginOutput() {
	b.drawFrameEdge(b.row, tcell.RuneULCorner, tcell.RuneURCorner)
	b.row++
	b.inOutput = true
}

// EndOutput closes the output block.
func (b *Backend) EndOutput() {
	b.drawFrameEdge(b.row, tcell.RuneLLCorner, tcell.RuneLRCorner)
	b.row++
	b.inOutput = false
}

// BeginShellOutput opens the same frame as BeginOutput; the two exist
// as distinct directives so source documents read naturally.
func (b *Backend) BeginShellOutput() { b.BeginOutput() }

// EndShellOutput closes the shell output frame.
func (b *Backend) EndShellOutput() { b.EndOutput() }

func (b *Backend) drawFrameEdge(y int, left, right rune) {
	style := b.pageStyle()
	for x := leftMargin - 1; x <= b.width-leftMargin; x++ {
		b.screen.SetContent(x, y, tcell.RuneHLine, nil, style)
	}
	b.screen.SetContent(leftMargin-1, y, left, nil, style)
	b.screen.SetContent(b.width-leftMargin, y, right, nil, style)
}

func (b *Backend) drawFrameSides(y int) {
	style := b.pageStyle()
	b.screen.SetContent(leftMargin-1, y, tcell.RuneVLine, nil, style)
	b.screen.SetContent(b.width-leftMargin, y, tcell.RuneVLine, nil, style)
}

// Sleep shows what has been drawn, then waits.
func (b *Backend) Sleep(d time.Duration) {
	b.Refresh()
	time.Sleep(d)
}

// Bold toggles the ambient bold attribute.
func (b *Backend) Bold(on bool) { b.bold = on }

// Underline toggles the ambient underline attribute.
func (b *Backend) Underline(on bool) { b.underline = on }

// Reverse toggles the ambient reverse-video attribute.
func (b *Backend) Reverse(on bool) { b.reverse = on }

// SetHugeFont selects the figlet font used by Huge.
func (b *Backend) SetHugeFont(name string) {
	if name = strings.TrimSpace(name); name != "" {
		b.hugeFont = name
	}
}

// Huge renders text as a figlet banner through the CommandRunner,
// degrading to a bold heading when figlet is unavailable.
func (b *Backend) Huge(text string) {
	cmdline := fmt.Sprintf("figlet -f %s -w %d -- %s",
		b.hugeFont, b.bodyWidth(), shellQuote(tpp.StripMarkup(text)))
	out, err := b.runner.Run(cmdline)
	if err != nil {
		b.Heading(text)
		return
	}
	style := b.pageStyle()
	for _, line := range splitOutput(out) {
		b.drawPlain(leftMargin, b.row, line, style)
		b.row++
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Header sets the line drawn at the top of every page.
func (b *Backend) Header(text string) {
	b.header = tpp.StripMarkup(text)
	b.drawFurniture()
}

// Footer sets the line drawn near the bottom of every page.
func (b *Backend) Footer(text string) {
	b.footer = tpp.StripMarkup(text)
	b.drawFurniture()
}

func (b *Backend) drawFurniture() {
	if b.header != "" {
		b.drawCentered(0, b.header, b.pageStyle().Bold(true))
	}
	if b.footer != "" {
		b.drawCentered(b.height-2, b.footer, b.pageStyle())
	}
}

// Title draws the presentation title as a bold centered line.
func (b *Backend) Title(text string) {
	b.drawCentered(b.row, tpp.StripMarkup(text), b.pageStyle().Bold(true))
	b.row++
}

// Author draws the author centered.
func (b *Backend) Author(text string) {
	b.drawCentered(b.row, tpp.StripMarkup(text), b.pageStyle())
	b.row++
}

// Date draws the (already expanded) date centered.
func (b *Backend) Date(text string) {
	b.drawCentered(b.row, tpp.StripMarkup(text), b.pageStyle())
	b.row++
}

// IncludeFile prints a file verbatim inside an output frame. A missing
// file degrades to its error text.
func (b *Backend) IncludeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.PrintLine(fmt.Sprintf("include %s: %v", path, err))
		return
	}
	b.BeginOutput()
	for _, line := range splitOutput(string(data)) {
		b.PrintLine(line)
	}
	b.EndOutput()
}

func tcellColor(c tpp.Color) tcell.Color {
	switch c {
	case tpp.ColorWhite:
		return tcell.ColorWhite
	case tpp.ColorYellow:
		return tcell.ColorYellow
	case tpp.ColorRed:
		return tcell.ColorRed
	case tpp.ColorGreen:
		return tcell.ColorGreen
	case tpp.ColorBlue:
		return tcell.ColorBlue
	case tpp.ColorCyan:
		return tcell.ColorDarkCyan
	case tpp.ColorMagenta:
		return tcell.ColorDarkMagenta
	case tpp.ColorBlack:
		return tcell.ColorBlack
	default:
		return tcell.ColorDefault
	}
}
