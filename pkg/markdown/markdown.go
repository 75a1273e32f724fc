// Package markdown strips markdown source down to plain text for text export.
//
// Only the plain-text reduction that feeds pagination lives here: inline
// markers (emphasis, strong, code spans, links) are reduced to their text,
// list bullets are normalized to a leading glyph and blocks are separated by
// one blank line. Converting markdown to display markup is out of scope.
package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Bullet prefixes unordered list items.
const Bullet = "• "

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Plain returns the plain-text content of markdown src.
func Plain(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))
	p := &plain{source: source}
	return strings.Join(p.children(doc, true), "\n")
}

type plain struct {
	source []byte
}

// children renders the block children of n. Loose containers separate
// blocks with a blank line.
func (p *plain) children(n ast.Node, loose bool) []string {
	var out []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		lines := p.block(c)
		if lines == nil {
			continue
		}
		if loose && len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

func (p *plain) block(n ast.Node) []string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		var b strings.Builder
		p.inline(n, &b)
		lines := strings.Split(strings.TrimSpace(b.String()), "\n")
		for i := range lines {
			lines[i] = strings.TrimRight(lines[i], " \t")
		}
		return lines
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return p.raw(n)
	case *ast.Blockquote:
		return p.children(n, true)
	case *ast.List:
		return p.list(n)
	case *ast.ThematicBreak, *ast.HTMLBlock:
		return nil
	default:
		return p.children(n, true)
	}
}

func (p *plain) list(l *ast.List) []string {
	var out []string
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := Bullet
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		lines := p.children(item, false)
		if len(lines) == 0 {
			lines = []string{""}
		}
		indent := strings.Repeat(" ", len([]rune(marker)))
		for i, line := range lines {
			switch {
			case i == 0:
				out = append(out, marker+line)
			case line == "":
				out = append(out, "")
			default:
				out = append(out, indent+line)
			}
		}
	}
	return out
}

func (p *plain) raw(n ast.Node) []string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(p.source)), "\r\n"))
	}
	return out
}

func (p *plain) inline(n ast.Node, b *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(unescape(c.Segment.Value(p.source)))
			switch {
			case c.HardLineBreak():
				b.WriteByte('\n')
			case c.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.CodeSpan:
			for t := c.FirstChild(); t != nil; t = t.NextSibling() {
				if s, ok := t.(*ast.Text); ok {
					b.Write(s.Segment.Value(p.source))
				}
			}
		case *ast.AutoLink:
			b.Write(c.Label(p.source))
		case *ast.RawHTML:
		default:
			p.inline(c, b)
		}
	}
}

func unescape(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}
