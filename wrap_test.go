package tpp

import (
	"reflect"
	"testing"
)

func TestWrapPlain(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  []string
	}{
		{"aaaa bbbb cccc", 9, []string{"aaaa", "bbbb", "cccc"}},
		{"xxxxxxxxxxxx", 5, []string{"xxxxx", "xxxxx", "xx"}},
		{"short", 80, []string{"short"}},
		{"", 10, []string{""}},
		{"one two", 4, []string{"one", "two"}},
	}
	for _, tc := range cases {
		got := WrapPlain(tc.in, tc.width)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("WrapPlain(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestWrapPlainClampsWidth(t *testing.T) {
	for _, width := range []int{0, -3} {
		got := WrapPlain("ab", width)
		want := []string{"a", "b", ""}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("WrapPlain(\"ab\", %d) = %q, want %q", width, got, want)
		}
	}
}

func TestWrapPlainNeverExceedsWidth(t *testing.T) {
	const width = 7
	for _, in := range []string{
		"a bb ccc dddd eeeee ffffff ggggggg hhhhhhhh",
		"supercalifragilistic",
		"  leading and   multiple   spaces",
	} {
		for _, line := range WrapPlain(in, width) {
			if len([]rune(line)) > width {
				t.Fatalf("wrapped line %q exceeds width %d (input %q)", line, width, in)
			}
		}
	}
}

func TestWrapUnitsMatchesPlainBoundaries(t *testing.T) {
	in := "aaaa bbbb cccc"
	units := BuildUnits(Tokenize(in), nil)
	got := WrapUnits(units, 9)
	want := WrapPlain(in, 9)
	if len(got) != len(want) {
		t.Fatalf("WrapUnits produced %d lines, WrapPlain %d", len(got), len(want))
	}
	for i, line := range got {
		var text []rune
		for _, u := range line {
			text = append(text, u.R)
		}
		if string(text) != want[i] {
			t.Fatalf("line %d = %q, want %q", i, string(text), want[i])
		}
	}
}

func TestWrapUnitsKeepsStyleWithCharacter(t *testing.T) {
	units := BuildUnits(Tokenize("--b bold--/b rest"), nil)
	wrapped := WrapUnits(units, 3)
	for _, line := range wrapped {
		for _, u := range line {
			if u.Style == nil {
				t.Fatalf("unit %q lost its style across the wrap", u.R)
			}
		}
	}
	// The bold run's characters stay bold no matter where the cuts
	// landed.
	for _, line := range wrapped {
		for _, u := range line {
			if u.R != ' ' && u.Style.Bold != (unitIsFromBoldRun(u)) {
				t.Fatalf("unit %q: bold=%v, want %v", u.R, u.Style.Bold, unitIsFromBoldRun(u))
			}
		}
	}
}

// unitIsFromBoldRun distinguishes the two words of the fixture line.
func unitIsFromBoldRun(u Unit) bool {
	switch u.R {
	case 'b', 'o', 'l', 'd':
		return true
	default:
		return false
	}
}

func TestWrapUnitsEmptyInput(t *testing.T) {
	lines := WrapUnits(nil, 10)
	if len(lines) != 1 || len(lines[0]) != 0 {
		t.Fatalf("WrapUnits(nil) = %v, want one empty line", lines)
	}
}
