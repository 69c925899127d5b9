package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and, when height > 0,
// exactly height lines tall. Split panes joined with lipgloss.JoinHorizontal stay aligned.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			ln = truncateText(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncateText cuts s to width columns, marking the cut with an ellipsis.
func truncateText(s string, width int) string {
	switch {
	case width <= 0:
		return ""
	case xansi.StringWidth(s) <= width:
		return s
	case width == 1:
		return xansi.Cut(s, 0, 1)
	default:
		return xansi.Cut(s, 0, width-1) + "…"
	}
}

// wrapText word-wraps plain text to width columns. Words longer than a line are hard-cut.
func wrapText(s string, width int) []string {
	s = strings.TrimSpace(s)
	if width <= 0 || s == "" {
		return []string{""}
	}

	lines := make([]string, 0, 2)
	cur, curW := "", 0
	for _, word := range strings.Fields(s) {
		ww := xansi.StringWidth(word)
		if cur != "" && curW+1+ww <= width {
			cur += " " + word
			curW += 1 + ww
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		for ww > width {
			lines = append(lines, xansi.Cut(word, 0, width))
			word = xansi.Cut(word, width, ww)
			ww = xansi.StringWidth(word)
		}
		cur, curW = word, ww
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}
