// Package txt exports presentations as plain text. Markup is stripped,
// pages are wrapped to a fixed width and separated by blank lines, and
// borders and output blocks become ASCII frames.
package txt

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/reflow/ansi"

	"pkt.systems/tpp"
)

// DefaultWidth is used when no width option is given.
const DefaultWidth = 80

// Backend writes pages to an io.Writer. Lines are buffered per page so
// a border requested mid-page can still frame the whole page.
type Backend struct {
	w      io.Writer
	runner tpp.CommandRunner
	width  int

	header string
	footer string

	page     []string
	border   bool
	inOutput bool
	started  bool
	err      error
}

var _ tpp.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithWidth sets the wrap width for exported text.
func WithWidth(width int) Option {
	return func(b *Backend) {
		if width > 0 {
			b.width = width
		}
	}
}

// WithRunner sets the command runner used by exec directives and shell
// splices encountered during export.
func WithRunner(runner tpp.CommandRunner) Option {
	return func(b *Backend) {
		if runner != nil {
			b.runner = runner
		}
	}
}

// New returns a text export backend writing to w.
func New(w io.Writer, opts ...Option) *Backend {
	b := &Backend{w: w, runner: tpp.NopRunner{}, width: DefaultWidth}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open resets the backend for a fresh export.
func (b *Backend) Open() error {
	b.page = nil
	b.started = false
	b.err = nil
	return nil
}

// Close flushes the final page and reports any write error seen during
// the export.
func (b *Backend) Close() error {
	b.flush()
	return b.err
}

// NewPage flushes the buffered page and starts the next one.
func (b *Backend) NewPage() {
	b.flush()
	b.page = nil
	b.border = false
	b.inOutput = false
	b.started = true
}

// Refresh is meaningless for a file export.
func (b *Backend) Refresh() {}

// flush writes the buffered page: header, body (framed when a border
// was requested), footer, and a separating blank line.
func (b *Backend) flush() {
	if !b.started {
		return
	}
	var out []string
	if b.header != "" {
		out = append(out, b.centered(b.header))
	}
	if b.border {
		edge := "+" + strings.Repeat("-", b.width-2) + "+"
		out = append(out, edge)
		for _, line := range b.page {
			out = append(out, "|"+pad(line, b.width-2)+"|")
		}
		out = append(out, edge)
	} else {
		out = append(out, b.page...)
	}
	if b.footer != "" {
		out = append(out, b.centered(b.footer))
	}
	for _, line := range out {
		b.write(line)
	}
	b.write("")
}

func (b *Backend) write(line string) {
	if b.err != nil {
		return
	}
	if _, err := fmt.Fprintln(b.w, line); err != nil {
		b.err = fmt.Errorf("txt: write: %w", err)
	}
}

func (b *Backend) emit(line string) {
	if b.inOutput {
		line = "| " + pad(line, b.bodyWidth()-4) + " |"
	}
	b.page = append(b.page, line)
}

// bodyWidth is the wrap width inside any active frame.
func (b *Backend) bodyWidth() int {
	if b.border {
		return b.width - 2
	}
	return b.width
}

func pad(line string, width int) string {
	gap := width - ansi.PrintableRuneWidth(line)
	if gap < 0 {
		return line
	}
	return line + strings.Repeat(" ", gap)
}

func (b *Backend) centered(text string) string {
	gap := (b.width - ansi.PrintableRuneWidth(text)) / 2
	if gap < 0 {
		gap = 0
	}
	return strings.Repeat(" ", gap) + text
}

// PrintLine strips markup and wraps the line into the page.
func (b *Backend) PrintLine(line string) {
	w := b.bodyWidth()
	if b.inOutput {
		w -= 4
	}
	for _, wrapped := range tpp.WrapPlain(tpp.StripMarkup(line), w) {
		b.emit(wrapped)
	}
}

// Heading renders a starred, centered heading.
func (b *Backend) Heading(text string) {
	b.emit(b.centered("*** " + tpp.StripMarkup(text) + " ***"))
}

// WithBorder frames the whole page when it is flushed.
func (b *Backend) WithBorder() { b.border = true }

// HorLine draws a rule across the page.
func (b *Backend) HorLine() {
	b.emit(strings.Repeat("-", b.bodyWidth()))
}

// SetColor has no text rendition.
func (b *Backend) SetColor(string) {}

// FGColor has no text rendition.
func (b *Backend) FGColor(string) {}

// BGColor has no text rendition.
func (b *Backend) BGColor(string) {}

// Center centers stripped text.
func (b *Backend) Center(text string) {
	for _, line := range tpp.WrapPlain(tpp.StripMarkup(text), b.bodyWidth()) {
		b.emit(b.centered(line))
	}
}

// Right aligns stripped text to the right edge.
func (b *Backend) Right(text string) {
	for _, line := range tpp.WrapPlain(tpp.StripMarkup(text), b.bodyWidth()) {
		gap := b.bodyWidth() - ansi.PrintableRuneWidth(line)
		if gap < 0 {
			gap = 0
		}
		b.emit(strings.Repeat(" ", gap) + line)
	}
}

// Exec runs the command and prints its output; a failure prints the
// error text instead.
func (b *Backend) Exec(cmdline string) {
	out, err := b.runner.Run(cmdline)
	if err != nil {
		b.PrintLine(fmt.Sprintf("%s: %v", cmdline, err))
		return
	}
	for _, line := range splitLines(out) {
		b.PrintLine(line)
	}
}

func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// BeginOutput opens an ASCII output frame.
func (b *Backend) BeginOutput() {
	w := b.bodyWidth()
	b.page = append(b.page, "+"+strings.Repeat("-", w-2)+"+")
	b.inOutput = true
}

// EndOutput closes the output frame.
func (b *Backend) EndOutput() {
	b.inOutput = false
	w := b.bodyWidth()
	b.page = append(b.page, "+"+strings.Repeat("-", w-2)+"+")
}

// BeginShellOutput opens the same frame as BeginOutput.
func (b *Backend) BeginShellOutput() { b.BeginOutput() }

// EndShellOutput closes the shell output frame.
func (b *Backend) EndShellOutput() { b.EndOutput() }

// Sleep has no text rendition.
func (b *Backend) Sleep(time.Duration) {}

// Bold has no text rendition.
func (b *Backend) Bold(bool) {}

// Underline has no text rendition.
func (b *Backend) Underline(bool) {}

// Reverse has no text rendition.
func (b *Backend) Reverse(bool) {}

// BeginSlide has no text rendition; lines print in place.
func (b *Backend) BeginSlide(tpp.Direction) {}

// EndSlide has no text rendition.
func (b *Backend) EndSlide() {}

// SetHugeFont has no text rendition.
func (b *Backend) SetHugeFont(string) {}

// Huge degrades to a heading.
func (b *Backend) Huge(text string) { b.Heading(text) }

// Header sets the line placed at the top of every exported page.
func (b *Backend) Header(text string) { b.header = tpp.StripMarkup(text) }

// Footer sets the line placed at the bottom of every exported page.
func (b *Backend) Footer(text string) { b.footer = tpp.StripMarkup(text) }

// Title renders the presentation title centered.
func (b *Backend) Title(text string) { b.emit(b.centered(tpp.StripMarkup(text))) }

// Author renders the author centered.
func (b *Backend) Author(text string) { b.emit(b.centered(tpp.StripMarkup(text))) }

// Date renders the date centered.
func (b *Backend) Date(text string) { b.emit(b.centered(tpp.StripMarkup(text))) }

// IncludeFile prints a file inside an output frame; a missing file
// prints its error text.
func (b *Backend) IncludeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.PrintLine(fmt.Sprintf("include %s: %v", path, err))
		return
	}
	b.BeginOutput()
	for _, line := range splitLines(string(data)) {
		b.PrintLine(line)
	}
	b.EndOutput()
}
