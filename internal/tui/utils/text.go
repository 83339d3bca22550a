package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated text
const Ellipsis = "..."

// TruncateWithWidth cuts text to maxWidth terminal cells, accounting for
// wide runes, and appends Ellipsis when something was cut.
func TruncateWithWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, Ellipsis)
}

// WrapText wraps text at word boundaries to fit within maxWidth cells.
// A single word wider than maxWidth gets a line of its own.
func WrapText(text string, maxWidth int) []string {
	var lines []string
	var line strings.Builder
	width := 0

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		switch {
		case width == 0:
			line.WriteString(word)
			width = w
		case width+1+w <= maxWidth:
			line.WriteByte(' ')
			line.WriteString(word)
			width += 1 + w
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			width = w
		}
	}

	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// TruncateToLines wraps text and keeps at most maxLines lines, marking the
// last kept line with Ellipsis when text was dropped.
func TruncateToLines(text string, maxLines, maxWidth int) string {
	lines := WrapText(text, maxWidth)
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}

	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if runewidth.StringWidth(last)+len(Ellipsis) > maxWidth {
		room := maxWidth - len(Ellipsis)
		if room < 0 {
			room = 0
		}
		last = runewidth.Truncate(last, room, "") + Ellipsis
	} else {
		last += Ellipsis
	}
	lines[maxLines-1] = last
	return strings.Join(lines, "\n")
}
