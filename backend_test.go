package tpp

import (
	"fmt"
	"time"
)

// recordingBackend captures every operation as a printable call trace.
type recordingBackend struct {
	calls []string
}

func (r *recordingBackend) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingBackend) Open() error  { r.record("open"); return nil }
func (r *recordingBackend) Close() error { r.record("close"); return nil }
func (r *recordingBackend) NewPage()     { r.record("newpage") }
func (r *recordingBackend) Refresh()     { r.record("refresh") }

func (r *recordingBackend) PrintLine(line string) { r.record("print %q", line) }

func (r *recordingBackend) Heading(text string)       { r.record("heading %q", text) }
func (r *recordingBackend) WithBorder()               { r.record("withborder") }
func (r *recordingBackend) HorLine()                  { r.record("horline") }
func (r *recordingBackend) SetColor(name string)      { r.record("color %s", name) }
func (r *recordingBackend) Center(text string)        { r.record("center %q", text) }
func (r *recordingBackend) Right(text string)         { r.record("right %q", text) }
func (r *recordingBackend) Exec(cmdline string)       { r.record("exec %q", cmdline) }
func (r *recordingBackend) BeginOutput()              { r.record("beginoutput") }
func (r *recordingBackend) EndOutput()                { r.record("endoutput") }
func (r *recordingBackend) BeginShellOutput()         { r.record("beginshelloutput") }
func (r *recordingBackend) EndShellOutput()           { r.record("endshelloutput") }
func (r *recordingBackend) Sleep(d time.Duration)     { r.record("sleep %s", d) }
func (r *recordingBackend) Bold(on bool)              { r.record("bold %v", on) }
func (r *recordingBackend) Underline(on bool)         { r.record("underline %v", on) }
func (r *recordingBackend) Reverse(on bool)           { r.record("reverse %v", on) }
func (r *recordingBackend) BeginSlide(dir Direction)  { r.record("beginslide %d", dir) }
func (r *recordingBackend) EndSlide()                 { r.record("endslide") }
func (r *recordingBackend) SetHugeFont(name string)   { r.record("sethugefont %s", name) }
func (r *recordingBackend) Huge(text string)          { r.record("huge %q", text) }
func (r *recordingBackend) Header(text string)        { r.record("header %q", text) }
func (r *recordingBackend) Footer(text string)        { r.record("footer %q", text) }
func (r *recordingBackend) Title(text string)         { r.record("title %q", text) }
func (r *recordingBackend) Author(text string)        { r.record("author %q", text) }
func (r *recordingBackend) Date(text string)          { r.record("date %q", text) }
func (r *recordingBackend) BGColor(name string)       { r.record("bgcolor %s", name) }
func (r *recordingBackend) FGColor(name string)       { r.record("fgcolor %s", name) }
func (r *recordingBackend) IncludeFile(path string)   { r.record("includefile %s", path) }
