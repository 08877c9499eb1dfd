package tpp

// WrapPlain greedily word-wraps text to the given width, breaking at
// single spaces. A remainder is emitted whole only once it is strictly
// shorter than the width; otherwise the break space is searched
// backward from index width-1. A run with no space inside the window
// is hard-cut at exactly width characters, which guarantees progress.
// Widths below 1 are clamped to 1. The result is never empty: empty
// input yields a single empty line, so rendering always advances by at
// least one row.
func WrapPlain(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	runes := []rune(text)
	var lines []string
	for len(runes) >= width {
		cut := -1
		for j := width - 1; j >= 0; j-- {
			if runes[j] == ' ' {
				cut = j
				break
			}
		}
		if cut < 0 {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
			continue
		}
		lines = append(lines, string(runes[:cut]))
		runes = runes[cut+1:]
	}
	return append(lines, string(runes))
}

// WrapUnits applies the same boundary policy as WrapPlain over styled
// units. Units move between lines wholesale, so a character is never
// separated from its style snapshot by a wrap boundary.
func WrapUnits(units []Unit, width int) [][]Unit {
	if width < 1 {
		width = 1
	}
	var lines [][]Unit
	for len(units) >= width {
		cut := -1
		for j := width - 1; j >= 0; j-- {
			if units[j].R == ' ' {
				cut = j
				break
			}
		}
		if cut < 0 {
			lines = append(lines, units[:width])
			units = units[width:]
			continue
		}
		lines = append(lines, units[:cut])
		units = units[cut+1:]
	}
	return append(lines, units)
}
