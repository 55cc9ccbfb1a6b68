package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var parser = goldmark.New().Parser()

// parse parses a markdown body into its AST.
func parse(source []byte) ast.Node {
	return parser.Parse(text.NewReader(source))
}

// PlainLines renders body as plain text, one line per paragraph, heading,
// list item or HTML block. Markup, links, images, and code blocks are
// dropped; link and code span text is kept. Front matter must already be
// stripped.
func PlainLines(body string) []string {
	source := []byte(body)
	doc := parse(source)

	var lines []string
	add := func(s string) {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			lines = append(lines, s)
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			add(htmlText(blockSource(n, source)))
			return ast.WalkSkipChildren, nil
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			add(inlineText(n, source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return lines
}

// inlineText concatenates the text of the inline children of n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(source))
		case *ast.RawHTML:
			// Inline tags carry no text of their own.
		case *ast.Image:
			// Alt text is not prose.
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}

func blockSource(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	if h, ok := n.(*ast.HTMLBlock); ok && h.HasClosure() {
		b.Write(h.ClosureLine.Value(source))
	}
	return b.String()
}

// htmlText returns the visible text of an HTML fragment.
func htmlText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
