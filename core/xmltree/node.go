// Package xmltree holds the document tree the normalizer walks and adapts
// parser output into it. A node is either Text or an Element.
package xmltree

import "strings"

// Node is a document tree node: *Text or *Element.
type Node interface {
	node()
}

// Text is character data, already entity-decoded by the parser.
type Text struct {
	Data string
}

// Element is a tag with attributes and ordered children.
// Name and attribute keys are lower-cased and keep their namespace prefix
// ("ac:image", "ri:filename").
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []Node
}

func (*Text) node()    {}
func (*Element) node() {}

// NewElement creates an element with a lower-cased name.
func NewElement(name string) *Element {
	return &Element{Name: strings.ToLower(name), Attrs: map[string]string{}}
}

// SetAttr stores an attribute under its lower-cased key. The first value wins.
func (e *Element) SetAttr(key, value string) {
	if e.Attrs == nil {
		e.Attrs = map[string]string{}
	}
	key = strings.ToLower(key)
	if _, ok := e.Attrs[key]; !ok {
		e.Attrs[key] = value
	}
}

// Attr returns the attribute value, or "" when it is missing.
func (e *Element) Attr(key string) string {
	return e.Attrs[strings.ToLower(key)]
}

// Append adds children in order.
func (e *Element) Append(children ...Node) {
	e.Children = append(e.Children, children...)
}

// ChildElements returns the direct element children named name.
func (e *Element) ChildElements(name string) []*Element {
	name = strings.ToLower(name)
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			out = append(out, el)
		}
	}
	return out
}

// Namespaced reports whether the element name carries a prefix.
func (e *Element) Namespaced() bool {
	return strings.Contains(e.Name, ":")
}
