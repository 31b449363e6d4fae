package xmltree

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RootName is the synthetic element wrapped around every input.
const RootName = "root"

// Document is a parsed storage-format fragment.
type Document struct {
	// Root is the synthetic root; its children are the input's top-level nodes.
	Root *Element
	// Recovered holds the XML error when the tree was rebuilt by the HTML parser.
	Recovered error
}

// Parse reads a storage-format fragment. Multiple top-level nodes are fine.
// Input that is not well-formed XML is re-parsed with the HTML parser,
// which recovers the way a browser DOM does.
func Parse(src string) (*Document, error) {
	root, xmlErr := parseXML(src)
	if xmlErr == nil {
		return &Document{Root: root}, nil
	}

	root, err := parseHTML(src)
	if err != nil {
		return nil, fmt.Errorf("parsing storage format: %w (xml: %v)", err, xmlErr)
	}
	return &Document{Root: root, Recovered: xmlErr}, nil
}

func parseXML(src string) (*Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		Permissive: true,
		Entity:     xml.HTMLEntity,
	}
	if err := doc.ReadFromString("<" + RootName + ">" + src + "</" + RootName + ">"); err != nil {
		return nil, err
	}

	wrapper := doc.Root()
	if wrapper == nil {
		return nil, fmt.Errorf("no root element")
	}
	return fromEtree(wrapper), nil
}

func fromEtree(el *etree.Element) *Element {
	out := NewElement(qualify(el.Space, el.Tag))
	for _, a := range el.Attr {
		out.SetAttr(qualify(a.Space, a.Key), a.Value)
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			out.Append(&Text{Data: t.Data})
		case *etree.Element:
			out.Append(fromEtree(t))
		}
		// Comments, processing instructions and directives are dropped.
	}
	return out
}

func qualify(space, local string) string {
	if space == "" {
		return local
	}
	return space + ":" + local
}

func parseHTML(src string) (*Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, err
	}

	root := NewElement(RootName)
	for _, n := range nodes {
		if c := fromHTML(n); c != nil {
			root.Append(c)
		}
	}
	return root, nil
}

func fromHTML(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		return &Text{Data: n.Data}
	case html.ElementNode:
		out := NewElement(n.Data)
		for _, a := range n.Attr {
			out.SetAttr(qualify(a.Namespace, a.Key), a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				out.Append(child)
			}
		}
		return out
	default:
		return nil
	}
}
