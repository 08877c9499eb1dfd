package tpp

import (
	"reflect"
	"testing"
	"time"
)

func dispatchAll(t *testing.T, lines ...string) *recordingBackend {
	t.Helper()
	rb := &recordingBackend{}
	d := NewDispatcher(rb)
	for _, line := range lines {
		d.Dispatch(line)
	}
	return rb
}

func TestDispatchDirectives(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"--heading Welcome", `heading "Welcome"`},
		{"--withborder", "withborder"},
		{"--horline", "horline"},
		{"--color red", "color red"},
		{"--center middle", `center "middle"`},
		{"--right edge", `right "edge"`},
		{"--exec uname -a", `exec "uname -a"`},
		{"--beginoutput", "beginoutput"},
		{"--endoutput", "endoutput"},
		{"--beginshelloutput", "beginshelloutput"},
		{"--endshelloutput", "endshelloutput"},
		{"--boldon", "bold true"},
		{"--boldoff", "bold false"},
		{"--revon", "reverse true"},
		{"--revoff", "reverse false"},
		{"--ulon", "underline true"},
		{"--uloff", "underline false"},
		{"--sethugefont standard", "sethugefont standard"},
		{"--huge BIG", `huge "BIG"`},
		{"--footer f", `footer "f"`},
		{"--header h", `header "h"`},
		{"--title t", `title "t"`},
		{"--author a", `author "a"`},
		{"--bgcolor blue", "bgcolor blue"},
		{"--fgcolor white", "fgcolor white"},
		{"--include-file notes.txt", "includefile notes.txt"},
		{"--sleep 2", "sleep 2s"},
	}
	for _, tc := range cases {
		rb := dispatchAll(t, tc.line)
		if len(rb.calls) != 1 || rb.calls[0] != tc.want {
			t.Errorf("Dispatch(%q) calls = %v, want [%s]", tc.line, rb.calls, tc.want)
		}
	}
}

func TestDispatchPause(t *testing.T) {
	rb := &recordingBackend{}
	d := NewDispatcher(rb)
	if !d.Dispatch("---") {
		t.Fatalf("pause marker should request a pause")
	}
	if len(rb.calls) != 0 {
		t.Fatalf("pause marker should not touch the backend: %v", rb.calls)
	}
	if d.Dispatch("--boldon") {
		t.Fatalf("only the pause marker returns true")
	}
}

func TestDispatchBodyTextFallThrough(t *testing.T) {
	for _, line := range []string{
		"plain body text",
		"",
		"--notadirective",
		"--headingwithout space",
		"--sleep",
		"----",
	} {
		rb := dispatchAll(t, line)
		want := []string{`print "` + line + `"`}
		// %q quoting in the fake matches simple ASCII lines.
		if !reflect.DeepEqual(rb.calls, want) {
			t.Errorf("Dispatch(%q) calls = %v, want %v", line, rb.calls, want)
		}
	}
}

func TestDispatchCommentIgnored(t *testing.T) {
	rb := dispatchAll(t, "--## just a note")
	if len(rb.calls) != 0 {
		t.Fatalf("comment should be ignored, got %v", rb.calls)
	}
}

func TestDispatchSlideDirectives(t *testing.T) {
	rb := dispatchAll(t,
		"--beginslideleft", "--endslideleft",
		"--beginslideright", "--endslideright",
		"--beginslidetop", "--endslidetop",
		"--beginslidebottom", "--endslidebottom",
	)
	want := []string{
		"beginslide 0", "endslide",
		"beginslide 1", "endslide",
		"beginslide 2", "endslide",
		"beginslide 3", "endslide",
	}
	if !reflect.DeepEqual(rb.calls, want) {
		t.Fatalf("calls = %v, want %v", rb.calls, want)
	}
}

func TestDispatchSleepIgnoresGarbage(t *testing.T) {
	rb := dispatchAll(t, "--sleep nope", "--sleep -4", "--sleep 0")
	if len(rb.calls) != 0 {
		t.Fatalf("invalid sleep arguments should be ignored, got %v", rb.calls)
	}
}

func TestDispatchDateToday(t *testing.T) {
	rb := &recordingBackend{}
	d := NewDispatcher(rb)
	d.now = func() time.Time {
		return time.Date(2006, time.August, 14, 12, 0, 0, 0, time.UTC)
	}

	d.Dispatch("--date today")
	d.Dispatch("--date today 2006-01-02")
	d.Dispatch("--date March 1st, forever")

	want := []string{
		`date "August 14, 2006"`,
		`date "2006-08-14"`,
		`date "March 1st, forever"`,
	}
	if !reflect.DeepEqual(rb.calls, want) {
		t.Fatalf("calls = %v, want %v", rb.calls, want)
	}
}
