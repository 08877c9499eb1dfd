// Package latex exports presentations as a standalone LaTeX document,
// one section per page. Inline styling maps to text commands, output
// blocks to verbatim environments, and interactive operations are
// no-ops.
package latex

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pkt.systems/tpp"
)

// Backend writes LaTeX to an io.Writer. Open emits the preamble and
// Close the closing of the document, so the exported file compiles on
// its own.
type Backend struct {
	w      io.Writer
	runner tpp.CommandRunner

	page       int
	inVerbatim bool
	err        error
}

var _ tpp.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithRunner sets the command runner used by exec directives.
func WithRunner(runner tpp.CommandRunner) Option {
	return func(b *Backend) {
		if runner != nil {
			b.runner = runner
		}
	}
}

// New returns a LaTeX export backend writing to w.
func New(w io.Writer, opts ...Option) *Backend {
	b := &Backend{w: w, runner: tpp.NopRunner{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var preamble = []string{
	`\documentclass[a4paper]{article}`,
	`\usepackage[utf8]{inputenc}`,
	`\usepackage[T1]{fontenc}`,
	`\usepackage{fancyvrb}`,
	`\begin{document}`,
}

// Open writes the document preamble.
func (b *Backend) Open() error {
	b.page = 0
	b.inVerbatim = false
	b.err = nil
	for _, line := range preamble {
		b.write(line)
	}
	return b.err
}

// Close ends the document and reports any write error.
func (b *Backend) Close() error {
	if b.inVerbatim {
		b.EndOutput()
	}
	b.write(`\end{document}`)
	return b.err
}

// NewPage starts a new section; every page after the first begins on a
// fresh sheet.
func (b *Backend) NewPage() {
	if b.inVerbatim {
		b.EndOutput()
	}
	if b.page > 0 {
		b.write(`\newpage`)
	}
	b.page++
}

// Refresh is meaningless for a file export.
func (b *Backend) Refresh() {}

func (b *Backend) write(line string) {
	if b.err != nil {
		return
	}
	if _, err := fmt.Fprintln(b.w, line); err != nil {
		b.err = fmt.Errorf("latex: write: %w", err)
	}
}

// Escape rewrites TeX special characters so arbitrary presentation text
// survives compilation.
func Escape(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case '\\':
			sb.WriteString(`\textbackslash{}`)
		case '~':
			sb.WriteString(`\textasciitilde{}`)
		case '^':
			sb.WriteString(`\textasciicircum{}`)
		case '&', '%', '$', '#', '_', '{', '}':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// render converts inline markup to LaTeX text commands: bold and
// underline map directly, reverse video and colors have no direct
// rendition and map to emphasis.
func render(line string) string {
	var sb strings.Builder
	var closers []string
	for _, tok := range tpp.Tokenize(line) {
		switch tok.Kind {
		case tpp.TokenText:
			sb.WriteString(Escape(tok.Text))
		case tpp.TokenToggle:
			if tok.On {
				switch tok.Attr {
				case tpp.AttrBold:
					sb.WriteString(`\textbf{`)
				case tpp.AttrUnderline:
					sb.WriteString(`\underline{`)
				default:
					sb.WriteString(`\emph{`)
				}
				closers = append(closers, "}")
			} else if len(closers) > 0 {
				sb.WriteString(closers[len(closers)-1])
				closers = closers[:len(closers)-1]
			}
		case tpp.TokenColorPush:
			sb.WriteString(`\emph{`)
			closers = append(closers, "}")
		case tpp.TokenColorPop:
			if len(closers) > 0 {
				sb.WriteString(closers[len(closers)-1])
				closers = closers[:len(closers)-1]
			}
		}
	}
	for i := len(closers) - 1; i >= 0; i-- {
		sb.WriteString(closers[i])
	}
	return sb.String()
}

// PrintLine emits one paragraph line; verbatim blocks pass text through
// unescaped.
func (b *Backend) PrintLine(line string) {
	if b.inVerbatim {
		b.write(tpp.StripMarkup(line))
		return
	}
	if line == "" {
		b.write("")
		return
	}
	b.write(render(line) + `\\`)
}

// Heading becomes an unnumbered section.
func (b *Backend) Heading(text string) {
	b.write(`\section*{` + Escape(tpp.StripMarkup(text)) + `}`)
}

// WithBorder has no LaTeX rendition; pages are framed by the class.
func (b *Backend) WithBorder() {}

// HorLine draws a full-width rule.
func (b *Backend) HorLine() {
	b.write(`\noindent\rule{\textwidth}{0.4pt}`)
}

// SetColor has no LaTeX rendition.
func (b *Backend) SetColor(string) {}

// FGColor has no LaTeX rendition.
func (b *Backend) FGColor(string) {}

// BGColor has no LaTeX rendition.
func (b *Backend) BGColor(string) {}

// Center wraps the text in a center environment.
func (b *Backend) Center(text string) {
	b.write(`\begin{center}`)
	b.write(render(text))
	b.write(`\end{center}`)
}

// Right wraps the text in a flushright environment.
func (b *Backend) Right(text string) {
	b.write(`\begin{flushright}`)
	b.write(render(text))
	b.write(`\end{flushright}`)
}

// Exec runs the command and emits its output as verbatim text; a
// failure emits the error text.
func (b *Backend) Exec(cmdline string) {
	out, err := b.runner.Run(cmdline)
	if err != nil {
		b.PrintLine(fmt.Sprintf("%s: %v", cmdline, err))
		return
	}
	b.BeginOutput()
	for _, line := range splitLines(out) {
		b.write(line)
	}
	b.EndOutput()
}

func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// BeginOutput opens a verbatim block.
func (b *Backend) BeginOutput() {
	if b.inVerbatim {
		return
	}
	b.write(`\begin{Verbatim}[frame=single]`)
	b.inVerbatim = true
}

// EndOutput closes the verbatim block.
func (b *Backend) EndOutput() {
	if !b.inVerbatim {
		return
	}
	b.write(`\end{Verbatim}`)
	b.inVerbatim = false
}

// BeginShellOutput opens the same verbatim block as BeginOutput.
func (b *Backend) BeginShellOutput() { b.BeginOutput() }

// EndShellOutput closes the verbatim block.
func (b *Backend) EndShellOutput() { b.EndOutput() }

// Sleep has no LaTeX rendition.
func (b *Backend) Sleep(time.Duration) {}

// Bold has no LaTeX rendition; inline markup carries the styling.
func (b *Backend) Bold(bool) {}

// Underline has no LaTeX rendition.
func (b *Backend) Underline(bool) {}

// Reverse has no LaTeX rendition.
func (b *Backend) Reverse(bool) {}

// BeginSlide has no LaTeX rendition; lines print in place.
func (b *Backend) BeginSlide(tpp.Direction) {}

// EndSlide has no LaTeX rendition.
func (b *Backend) EndSlide() {}

// SetHugeFont has no LaTeX rendition.
func (b *Backend) SetHugeFont(string) {}

// Huge becomes a large centered line.
func (b *Backend) Huge(text string) {
	b.write(`\begin{center}`)
	b.write(`{\Huge ` + Escape(tpp.StripMarkup(text)) + `}`)
	b.write(`\end{center}`)
}

// Header has no LaTeX rendition; the class renders running heads.
func (b *Backend) Header(string) {}

// Footer has no LaTeX rendition.
func (b *Backend) Footer(string) {}

// Title emits a centered large title line.
func (b *Backend) Title(text string) {
	b.write(`\begin{center}{\LARGE ` + Escape(tpp.StripMarkup(text)) + `}\end{center}`)
}

// Author emits a centered author line.
func (b *Backend) Author(text string) {
	b.write(`\begin{center}` + Escape(tpp.StripMarkup(text)) + `\end{center}`)
}

// Date emits a centered date line.
func (b *Backend) Date(text string) {
	b.write(`\begin{center}` + Escape(tpp.StripMarkup(text)) + `\end{center}`)
}

// IncludeFile emits the file verbatim; a missing file emits its error
// text.
func (b *Backend) IncludeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.PrintLine(fmt.Sprintf("include %s: %v", path, err))
		return
	}
	b.BeginOutput()
	for _, line := range splitLines(string(data)) {
		b.write(line)
	}
	b.EndOutput()
}
