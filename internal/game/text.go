package game

import (
	"strings"
	"unicode/utf8"
)

// WrapText inserts soft line breaks so that each line fits within width
// visible columns. Colour markup does not count towards the width. Paragraph
// breaks are preserved and narrow clients are treated as 20 columns wide.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if width < 20 {
		width = 20
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(strings.TrimSpace(line), width)
	}
	return strings.Join(lines, "\n")
}

func visibleLen(word string) int {
	return utf8.RuneCountInString(StripMarkup(word))
}

func wrapLine(line string, width int) string {
	var b strings.Builder
	current := 0
	for _, word := range strings.Fields(line) {
		n := visibleLen(word)
		for n > width && !strings.Contains(word, "|") {
			runes := []rune(word)
			if current != 0 {
				b.WriteByte('\n')
			}
			b.WriteString(string(runes[:width]))
			b.WriteByte('\n')
			word = string(runes[width:])
			n = len(runes) - width
			current = 0
		}
		if n == 0 {
			continue
		}
		switch {
		case current == 0:
			current = n
		case current+1+n > width:
			b.WriteByte('\n')
			current = n
		default:
			b.WriteByte(' ')
			current += 1 + n
		}
		b.WriteString(word)
	}
	return b.String()
}
