// Package normalize implements the Normalizer interface.
// It walks a storage-format document and emits HTML restricted to a fixed
// tag allowlist, resolving image macros and unwrapping everything else.
package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/gaurav-prasanna/xhtml2md/core/xmltree"
)

// XHTMLNormalizer converts storage-format XHTML into allow-listed HTML.
type XHTMLNormalizer struct {
	logger *slog.Logger
}

// New creates an XHTMLNormalizer. A nil logger discards output.
func New(logger *slog.Logger) *XHTMLNormalizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &XHTMLNormalizer{logger: logger}
}

// Normalize parses xhtml and returns the normalized HTML.
func (n *XHTMLNormalizer) Normalize(xhtml string, opts core.Options) (string, error) {
	doc, err := xmltree.Parse(xhtml)
	if err != nil {
		return "", fmt.Errorf("parsing xhtml: %w", err)
	}
	if doc.Recovered != nil {
		n.logger.Debug("xhtml is not well-formed, using html recovery", "error", doc.Recovered)
	}
	return Tree(doc.Root, opts), nil
}

// Tree normalizes the children of root in document order.
func Tree(root *xmltree.Element, opts core.Options) string {
	w := walker{opts: opts}
	var b strings.Builder
	w.children(&b, root)
	return b.String()
}

type walker struct {
	opts core.Options
}

func (w walker) node(b *strings.Builder, n xmltree.Node) {
	switch n := n.(type) {
	case *xmltree.Text:
		b.WriteString(n.Data)
	case *xmltree.Element:
		w.element(b, n)
	}
}

func (w walker) children(b *strings.Builder, el *xmltree.Element) {
	for _, c := range el.Children {
		w.node(b, c)
	}
}

func (w walker) element(b *strings.Builder, el *xmltree.Element) {
	if el.Name == imageMacro {
		b.WriteString(w.image(el))
		return
	}

	// Unknown macro: keep the content, drop the wrapper.
	if el.Namespaced() && !strings.HasPrefix(el.Name, "xml") {
		w.children(b, el)
		return
	}

	policy, ok := Policy(el.Name)
	if !ok {
		w.children(b, el)
		return
	}

	b.WriteString("<" + el.Name)
	for _, key := range policy.Attrs {
		if v := strings.TrimSpace(el.Attr(key)); v != "" {
			b.WriteString(" " + key + `="` + escapeAttr(v) + `"`)
		}
	}
	if policy.Void {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
	w.children(b, el)
	b.WriteString("</" + el.Name + ">")
}

func escapeAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}
