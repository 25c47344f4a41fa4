package extract

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// extractMarkdown flattens a markdown note to plain text via the
// goldmark AST. Headings become their own paragraphs so the chunker
// keeps section boundaries.
func extractMarkdown(data []byte) (Result, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var paragraphs []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := blockText(n, data); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}

	return Result{
		Text:   strings.Join(paragraphs, "\n\n"),
		Pages:  1,
		Method: MethodTextLayer,
	}, nil
}

func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	// container blocks (lists, quotes) have no lines of their own
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
