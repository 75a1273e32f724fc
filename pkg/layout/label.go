package layout

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WrapLabel splits label into at most maxLines chunks of perLine
// user-perceived characters. When content remains after the last line, that
// line ends with [Ellipsis]. The ellipsis counts against the perLine limit,
// so a truncated line keeps perLine-1 characters of the label and is still
// exactly perLine characters long. An empty label yields no lines.
func WrapLabel(label string, perLine, maxLines int) []string {
	if label == "" || maxLines <= 0 {
		return nil
	}
	perLine = max(perLine, 1)

	clusters := graphemes(label)
	var lines []string
	for start := 0; start < len(clusters) && len(lines) < maxLines; start += perLine {
		end := min(start+perLine, len(clusters))
		if len(lines) == maxLines-1 && end < len(clusters) {
			cut := max(end-1, start)
			lines = append(lines, strings.Join(clusters[start:cut], "")+Ellipsis)
			break
		}
		lines = append(lines, strings.Join(clusters[start:end], ""))
	}
	return lines
}

// graphemes splits s into grapheme clusters.
func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
