package term

import (
	"time"

	"pkt.systems/tpp"
)

// slideStepDelay paces transition animation frames.
const slideStepDelay = 6 * time.Millisecond

// BeginSlide starts collecting body lines for an animated entry from
// the given edge. Lines printed until EndSlide are buffered, not
// drawn.
func (b *Backend) BeginSlide(dir tpp.Direction) {
	b.sliding = true
	b.slideDir = dir
	b.slideBuf = nil
}

// EndSlide animates the buffered lines in from the transition edge,
// then renders them in place through the normal styled pipeline. All
// four end directives converge here regardless of the direction they
// name.
func (b *Backend) EndSlide() {
	if !b.sliding {
		return
	}
	b.sliding = false
	lines := b.slideBuf
	b.slideBuf = nil
	for _, line := range lines {
		switch b.slideDir {
		case tpp.DirLeft, tpp.DirRight:
			b.slideHorizontal(line)
		case tpp.DirTop, tpp.DirBottom:
			b.slideVertical(line)
		}
		b.PrintLine(line)
		b.Refresh()
	}
}

func (b *Backend) slideHorizontal(line string) {
	text := []rune(tpp.StripMarkup(line))
	if len(text) > b.bodyWidth() {
		text = text[:b.bodyWidth()]
	}
	y := b.row
	style := b.pageStyle()
	fromLeft := b.slideDir == tpp.DirLeft
	for step := 0; step <= b.width-leftMargin; step += 2 {
		b.clearBodyRow(y)
		x := step - len(text)
		if !fromLeft {
			x = b.width - step
		}
		for i, r := range text {
			cx := x + i
			if cx >= leftMargin && cx < b.width-leftMargin {
				b.screen.SetContent(cx, y, r, nil, style)
			}
		}
		b.Refresh()
		time.Sleep(slideStepDelay)
		if (fromLeft && x >= leftMargin) || (!fromLeft && x <= leftMargin) {
			break
		}
	}
	b.clearBodyRow(y)
}

func (b *Backend) slideVertical(line string) {
	text := tpp.StripMarkup(line)
	target := b.row
	style := b.pageStyle()
	fromTop := b.slideDir == tpp.DirTop
	y := b.bodyBottom()
	if fromTop {
		y = topRows
	}
	for {
		b.clearBodyRow(y)
		b.drawPlain(leftMargin, y, text, style)
		b.Refresh()
		time.Sleep(slideStepDelay)
		if y == target {
			break
		}
		b.clearBodyRow(y)
		if fromTop {
			y++
		} else {
			y--
		}
		if fromTop && y > target {
			y = target
		}
		if !fromTop && y < target {
			y = target
		}
	}
	b.clearBodyRow(target)
}

func (b *Backend) clearBodyRow(y int) {
	style := b.pageStyle()
	for x := leftMargin; x < b.width-leftMargin; x++ {
		b.screen.SetContent(x, y, ' ', nil, style)
	}
}
