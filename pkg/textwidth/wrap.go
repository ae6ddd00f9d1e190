// ABOUTME: ANSI-aware text wrapping and truncation
// ABOUTME: Wrap breaks at column boundaries; TruncateToWidth adds ellipsis

package textwidth

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap splits s into lines of at most maxWidth visible columns.
// ANSI escape sequences are preserved and do not count toward width;
// active styling carries over to continuation lines. Words are broken
// when they exceed maxWidth.
func Wrap(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	col := 0
	var sgr ActiveSGR

	i := 0
	for i < len(s) {
		if s[i] == '\n' {
			lines = append(lines, cur.String())
			cur.Reset()
			col = 0
			cur.WriteString(sgr.String())
			i++
			continue
		}

		if s[i] == '\x1b' {
			end := skipSequence(s, i)
			seq := s[i:end]
			sgr.Apply(seq)
			cur.WriteString(seq)
			i = end
			continue
		}

		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		w := clusterWidth(cluster)

		if col+w > maxWidth {
			lines = append(lines, cur.String())
			cur.Reset()
			col = 0
			cur.WriteString(sgr.String())
		}

		cur.WriteString(cluster)
		col += w
		i += len(s[i:]) - len(rest)
	}

	lines = append(lines, cur.String())
	return lines
}

// TruncateToWidth shortens s to at most maxWidth visible columns.
// If truncation occurs, the last visible cell becomes an ellipsis.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1 // leave room for the ellipsis
	i := 0
	for i < len(s) && col < target {
		if s[i] == '\x1b' {
			end := skipSequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := clusterWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		i += len(s[i:]) - len(rest)
	}
	b.WriteString("\x1b[0m")
	b.WriteRune('…')
	return b.String()
}
