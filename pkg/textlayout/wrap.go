package textlayout

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Lines splits text into raw lines on \n, dropping \r of CRLF endings.
// Empty text yields no lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// Wrap wraps every raw line to width. Each raw line is filled greedily; a new
// wrapped line starts before the cluster that would push the measured width
// past width. An empty raw line yields one empty wrapped line. A single
// cluster wider than width cannot be split and is placed on a line of its own.
func Wrap(lines []string, width float64, m Measurer) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		out = append(out, wrapLine(raw, width, m)...)
	}
	return out
}

func wrapLine(raw string, width float64, m Measurer) []string {
	if raw == "" {
		return []string{""}
	}
	var (
		out []string
		cur strings.Builder
	)
	g := uniseg.NewGraphemes(raw)
	for g.Next() {
		cluster := g.Str()
		if cur.Len() > 0 && m.Measure(cur.String()+cluster) > width {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteString(cluster)
	}
	return append(out, cur.String())
}
