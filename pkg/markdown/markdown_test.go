package markdown

import "testing"

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"Empty", "", ""},
		{"Text", "hello world", "hello world"},
		{"Emphasis", "some **bold** and *italic* and ~~gone~~", "some bold and italic and gone"},
		{"CodeSpan", "run `go test` now", "run go test now"},
		{"Link", "see [the docs](https://example.com) and <https://x.io>", "see the docs and https://x.io"},
		{"Heading", "# Title\n\nBody", "Title\n\nBody"},
		{"SoftBreak", "one\ntwo", "one two"},
		{"Bullets", "- one\n- two", "• one\n• two"},
		{"StarBullets", "* one\n* **two**", "• one\n• two"},
		{"Ordered", "1. first\n2. second", "1. first\n2. second"},
		{"OrderedStart", "3. third\n4. fourth", "3. third\n4. fourth"},
		{"Nested", "- outer\n  - inner", "• outer\n  • inner"},
		{"ThematicBreak", "above\n\n---\n\nbelow", "above\n\nbelow"},
		{"FencedCode", "```go\nx := *p\n```", "x := *p"},
		{"Quote", "> quoted *text*", "quoted text"},
		{"Entities", "fish &amp; chips", "fish & chips"},
		{"Image", "![alt text](img.png)", "alt text"},
		{"HTMLBlock", "<div>\nhidden\n</div>\n\nshown", "shown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plain(tt.src); got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestPlainDocument(t *testing.T) {
	src := "# Study plan\n\nLearn **graphs** first.\n\n- trees\n- layouts\n\n1. read\n2. practice\n"
	want := "Study plan\n\nLearn graphs first.\n\n• trees\n• layouts\n\n1. read\n2. practice"
	if got := Plain(src); got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}
}
