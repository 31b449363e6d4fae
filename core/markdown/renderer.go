// Package markdown renders normalized HTML into Markdown.
// The general conversion is done by html-to-markdown; tables and line
// breaks are handled by override rules registered ahead of its defaults.
package markdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
)

// RenderError wraps a failure of the rendering engine.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "rendering markdown: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer converts normalized HTML to Markdown.
type Renderer struct {
	conv *converter.Converter
}

// New creates a Renderer with ATX headings, fenced code blocks and rules
// registered in order.
func New(rules ...Rule) *Renderer {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithCodeBlockFence("```"),
			),
		),
	)
	for i, rule := range rules {
		if rule.Block {
			conv.Register.RendererFor(rule.Tag, converter.TagTypeBlock, rule.handler(), converter.PriorityEarly+i)
		} else {
			conv.Register.RendererFor(rule.Tag, converter.TagTypeInline, rule.handler(), converter.PriorityEarly+i)
		}
	}

	return &Renderer{conv: conv}
}

func (r Rule) handler() converter.HandleRenderFunc {
	return func(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
		if !r.Matches(n) {
			return converter.RenderTryNext
		}
		w.WriteString(r.Render(n))
		return converter.RenderSuccess
	}
}

// Render converts normalized HTML and tidies the result: blank line runs
// collapse to one, surrounding whitespace is trimmed and a single newline
// ends the text.
func (r *Renderer) Render(normalized string) (string, error) {
	md, err := r.conv.ConvertString(normalized)
	if err != nil {
		return "", &RenderError{Err: err}
	}
	return Tidy(md), nil
}

var blankLineRun = regexp.MustCompile(`\n{3,}`)

// CollapseBlankLines replaces runs of three or more newlines with two.
func CollapseBlankLines(s string) string {
	return blankLineRun.ReplaceAllString(s, "\n\n")
}

// Tidy applies the post-processing pass to rendered Markdown.
func Tidy(md string) string {
	return strings.TrimSpace(CollapseBlankLines(md)) + "\n"
}
