package tpp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	newpagePrefix    = "--newpage"
	commentPrefix    = "--##"
	shellSplice      = "$$"
	shellSplicePct   = "$%"
	splicePrefixMark = "%"
)

// Page is one slide: a title and a fixed sequence of raw lines, plus
// the navigator's cursor into them. Lines never change after load;
// shell-splice output is materialized exactly once, when the document
// is built.
type Page struct {
	Title string

	lines  []string
	cursor int
	eop    bool
}

// Lines returns the page's raw lines.
func (p *Page) Lines() []string { return p.lines }

// LineCount returns the number of raw lines on the page.
func (p *Page) LineCount() int { return len(p.lines) }

// Cursor returns the index of the next line to dispatch.
func (p *Page) Cursor() int { return p.cursor }

// EOP reports whether every line of the page has been dispatched.
func (p *Page) EOP() bool { return p.eop }

// NextLine returns the next undelivered line and advances the cursor.
// Once the page is exhausted it sets the end-of-page flag and reports
// false. The flag is set here, on the failed pull, so a pause marker
// as the final line pauses first and ends the page on the next pass.
func (p *Page) NextLine() (string, bool) {
	if p.cursor >= len(p.lines) {
		p.eop = true
		return "", false
	}
	line := p.lines[p.cursor]
	p.cursor++
	return line, true
}

// Reset rewinds the cursor and clears the end-of-page flag.
func (p *Page) Reset() {
	p.cursor = 0
	p.eop = false
}

// Document is an ordered sequence of pages, owned by a Navigator for
// the lifetime of one load. Reload builds a fresh Document; pages are
// never patched in place.
type Document struct {
	Pages []*Page
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// LoadFile reads and parses a presentation source file. The runner
// executes $$/$% shell splices during the build; pass NopRunner to
// load without executing anything.
func LoadFile(path string, runner CommandRunner) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	doc, err := Parse(f, runner)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a Document from a source stream. Pages split on
// --newpage lines; a trailing argument names the page and untitled
// pages are numbered in order. Comment lines are dropped. Lines
// prefixed $$ or $% are replaced by the captured standard output of
// the rest of the line, run through the runner once, now: the splice
// is a load-time cache, never re-executed per visit. The $% variant
// prefixes every produced line with "%". A failing command contributes
// its error text as a content line instead of aborting the build.
func Parse(r io.Reader, runner CommandRunner) (*Document, error) {
	if runner == nil {
		runner = NopRunner{}
	}
	doc := &Document{}
	cur := &Page{}
	flush := func() {
		doc.Pages = append(doc.Pages, cur)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, commentPrefix):
			// dropped at load
		case line == newpagePrefix || strings.HasPrefix(line, newpagePrefix+" "):
			title := strings.TrimSpace(strings.TrimPrefix(line, newpagePrefix))
			if len(doc.Pages) == 0 && len(cur.lines) == 0 && cur.Title == "" {
				cur.Title = title
				continue
			}
			flush()
			cur = &Page{Title: title}
		case strings.HasPrefix(line, shellSplice) || strings.HasPrefix(line, shellSplicePct):
			cur.lines = append(cur.lines, spliceShell(line, runner)...)
		default:
			cur.lines = append(cur.lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	num := 0
	for _, p := range doc.Pages {
		num++
		if p.Title == "" {
			p.Title = fmt.Sprintf("Page %d", num)
		}
	}
	return doc, nil
}

func spliceShell(line string, runner CommandRunner) []string {
	prefixed := strings.HasPrefix(line, shellSplicePct)
	cmdline := line[len(shellSplice):]
	out, err := runner.Run(cmdline)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", cmdline, err)}
	}
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	if prefixed {
		for i, l := range lines {
			lines[i] = splicePrefixMark + l
		}
	}
	return lines
}
