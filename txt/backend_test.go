package txt

import (
	"errors"
	"strings"
	"testing"

	"pkt.systems/tpp"
)

type fakeRunner struct {
	out string
	err error
}

func (f fakeRunner) Run(string) (string, error) { return f.out, f.err }

func export(t *testing.T, source string, opts ...Option) string {
	t.Helper()
	doc, err := tpp.Parse(strings.NewReader(source), tpp.NopRunner{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var sb strings.Builder
	b := New(&sb, opts...)
	if err := tpp.Export(tpp.ExportRequest{Document: doc, Backend: b}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	return sb.String()
}

func TestExportStripsMarkup(t *testing.T) {
	got := export(t, "plain --b loud--/b --c red hot--/c end\n")
	if !strings.Contains(got, "plain  loud  hot end") {
		t.Fatalf("markup not stripped:\n%s", got)
	}
	if strings.Contains(got, "--b") || strings.Contains(got, "--c") {
		t.Fatalf("markers leaked into export:\n%s", got)
	}
}

func TestExportWrapsToWidth(t *testing.T) {
	got := export(t, "aaaa bbbb cccc\n", WithWidth(9))
	want := "aaaa\nbbbb\ncccc\n"
	if !strings.Contains(got, want) {
		t.Fatalf("wrapped output:\n%s", got)
	}
}

func TestHeadingStyle(t *testing.T) {
	got := export(t, "--heading Welcome\n", WithWidth(30))
	if !strings.Contains(got, "*** Welcome ***") {
		t.Fatalf("heading missing:\n%s", got)
	}
	line := lineContaining(t, got, "Welcome")
	if !strings.HasPrefix(line, " ") {
		t.Fatalf("heading not centered: %q", line)
	}
}

func TestPagesSeparatedByBlankLine(t *testing.T) {
	got := export(t, "one\n--newpage second\ntwo\n")
	first := strings.Index(got, "one")
	second := strings.Index(got, "two")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("page order wrong:\n%s", got)
	}
	between := got[first:second]
	if !strings.Contains(between, "\n\n") {
		t.Fatalf("pages not separated by a blank line:\n%s", got)
	}
}

func TestBorderFramesWholePage(t *testing.T) {
	got := export(t, "--withborder\nframed\n", WithWidth(20))
	if !strings.Contains(got, "+"+strings.Repeat("-", 18)+"+") {
		t.Fatalf("border edges missing:\n%s", got)
	}
	line := lineContaining(t, got, "framed")
	if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
		t.Fatalf("body line not framed: %q", line)
	}
	if len(line) != 20 {
		t.Fatalf("framed line width = %d, want 20", len(line))
	}
}

func TestOutputBlockFraming(t *testing.T) {
	got := export(t, "--beginoutput\ninside\n--endoutput\n", WithWidth(20))
	line := lineContaining(t, got, "inside")
	if !strings.HasPrefix(line, "| ") || !strings.HasSuffix(line, " |") {
		t.Fatalf("output line not framed: %q", line)
	}
	if strings.Count(got, "+------------------+") != 2 {
		t.Fatalf("expected frame above and below:\n%s", got)
	}
}

func TestHorLineAndRight(t *testing.T) {
	got := export(t, "--horline\n--right edge\n", WithWidth(12))
	if !strings.Contains(got, strings.Repeat("-", 12)) {
		t.Fatalf("rule missing:\n%s", got)
	}
	line := lineContaining(t, got, "edge")
	if line != strings.Repeat(" ", 8)+"edge" {
		t.Fatalf("right alignment: %q", line)
	}
}

func TestHeaderFooterOnEveryPage(t *testing.T) {
	got := export(t, "--header TOP\n--footer BOT\nbody\n--newpage\nmore\n")
	if strings.Count(got, "TOP") != 2 || strings.Count(got, "BOT") != 2 {
		t.Fatalf("furniture not on both pages:\n%s", got)
	}
}

func TestExecOutputAndFailure(t *testing.T) {
	doc, err := tpp.Parse(strings.NewReader("--exec uptime\n"), tpp.NopRunner{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var sb strings.Builder
	b := New(&sb, WithRunner(fakeRunner{out: "up 3 days\n"}))
	if err := tpp.Export(tpp.ExportRequest{Document: doc, Backend: b}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(sb.String(), "up 3 days") {
		t.Fatalf("exec output missing:\n%s", sb.String())
	}

	sb.Reset()
	b = New(&sb, WithRunner(fakeRunner{err: errors.New("exit status 1")}))
	if err := tpp.Export(tpp.ExportRequest{Document: doc, Backend: b}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(sb.String(), "exit status 1") {
		t.Fatalf("exec failure text missing:\n%s", sb.String())
	}
}

func TestPauseIgnoredInExport(t *testing.T) {
	got := export(t, "before\n---\nafter\n")
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Fatalf("pause stopped the export:\n%s", got)
	}
	if strings.Contains(got, "---\n") {
		t.Fatalf("pause marker leaked:\n%s", got)
	}
}

func lineContaining(t *testing.T, text, substr string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line containing %q in:\n%s", substr, text)
	return ""
}
