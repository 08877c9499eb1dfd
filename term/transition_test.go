package term

import (
	"strings"
	"testing"

	"pkt.systems/tpp"
)

func TestSlideBuffersUntilEnd(t *testing.T) {
	b := simBackend(t, nil)
	b.BeginSlide(tpp.DirLeft)
	b.PrintLine("sliding in")
	if got := rowText(t, b, topRows); strings.Contains(got, "sliding") {
		t.Fatalf("line drawn before EndSlide: %q", got)
	}
	if len(b.slideBuf) != 1 {
		t.Fatalf("buffer len = %d, want 1", len(b.slideBuf))
	}
	b.EndSlide()
	if got := rowText(t, b, topRows); !strings.Contains(got, "sliding in") {
		t.Fatalf("line not rendered after EndSlide: %q", got)
	}
	if b.sliding || b.slideBuf != nil {
		t.Fatalf("slide state not cleared")
	}
}

func TestSlideFromEachDirectionLandsInPlace(t *testing.T) {
	for _, dir := range []tpp.Direction{tpp.DirLeft, tpp.DirRight, tpp.DirTop, tpp.DirBottom} {
		b := simBackend(t, nil)
		b.BeginSlide(dir)
		b.PrintLine("x")
		b.EndSlide()
		if got := rowText(t, b, topRows); !strings.Contains(got, "x") {
			t.Fatalf("dir %d: line missing after slide: %q", dir, got)
		}
		if b.row != topRows+1 {
			t.Fatalf("dir %d: row = %d, want %d", dir, b.row, topRows+1)
		}
	}
}

func TestEndSlideWithoutBeginIsNoop(t *testing.T) {
	b := simBackend(t, nil)
	b.EndSlide()
	if b.row != topRows {
		t.Fatalf("row moved: %d", b.row)
	}
}
