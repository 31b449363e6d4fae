// JSON renderer.
// Wraps the converted Markdown in a JSON envelope with page metadata and
// the document structure read from goldmark's AST.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct {
	md goldmark.Markdown
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Render converts Markdown and metadata into the JSON envelope.
func (r *JSONRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	page := core.PageJSON{
		Metadata:  meta,
		Content:   core.PageContent{Markdown: markdown},
		Structure: r.Structure(markdown),
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Structure walks the Markdown AST and collects headings, links, images
// and block counts.
func (r *JSONRenderer) Structure(markdown string) core.PageStructure {
	source := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(source))

	s := core.PageStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
		Images:   []core.Image{},
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, core.Heading{Level: n.Level, Text: nodeText(n, source)})
		case *ast.Link:
			s.Links = append(s.Links, core.Link{Text: nodeText(n, source), Href: string(n.Destination)})
		case *ast.Image:
			s.Images = append(s.Images, core.Image{Alt: nodeText(n, source), Src: string(n.Destination)})
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
		case *ast.ListItem:
			s.ListItems++
		case *east.Table:
			s.Tables++
		}
		return ast.WalkContinue, nil
	})
	return s
}

// Title returns the text of the first heading, or "".
func (r *JSONRenderer) Title(markdown string) string {
	if h := r.Structure(markdown).Headings; len(h) > 0 {
		return h[0].Text
	}
	return ""
}

// nodeText concatenates the inline text below n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.CodeSpan:
			for t := c.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					b.Write(seg.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
