package tpp

import "time"

// Direction names the edge a slide transition enters from.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirTop
	DirBottom
)

// Backend is the capability interface a rendering surface implements.
// The Dispatcher invokes exactly one method per classified source
// line; the Navigator drives the lifecycle hooks. The interface is
// total: export backends implement every method and no-op the framing
// and styling operations their output format cannot express.
type Backend interface {
	// Open prepares the surface. A failure here is fatal to the run.
	Open() error
	// Close releases the surface and flushes any buffered output.
	Close() error
	// NewPage resets per-page drawing state before a page is replayed.
	NewPage()
	// Refresh makes everything drawn so far visible.
	Refresh()

	// PrintLine renders one body-text line, inline markup included.
	PrintLine(line string)

	Heading(text string)
	WithBorder()
	HorLine()
	SetColor(name string)
	Center(text string)
	Right(text string)
	Exec(cmdline string)
	BeginOutput()
	EndOutput()
	BeginShellOutput()
	EndShellOutput()
	Sleep(d time.Duration)
	Bold(on bool)
	Underline(on bool)
	Reverse(on bool)
	BeginSlide(dir Direction)
	EndSlide()
	SetHugeFont(name string)
	Huge(text string)
	Header(text string)
	Footer(text string)
	Title(text string)
	Author(text string)
	Date(text string)
	BGColor(name string)
	FGColor(name string)
	IncludeFile(path string)
}
