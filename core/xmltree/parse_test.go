package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormed(t *testing.T) {
	doc, err := Parse(`<p>Hello</p><ac:image ac:alt="Pic"><ri:attachment ri:filename="a.png"/></ac:image>tail`)
	require.NoError(t, err)
	require.NoError(t, doc.Recovered)

	root := doc.Root
	assert.Equal(t, RootName, root.Name)
	require.Len(t, root.Children, 3)

	p, ok := root.Children[0].(*Element)
	require.True(t, ok)
	assert.Equal(t, "p", p.Name)
	assert.Equal(t, []Node{&Text{Data: "Hello"}}, p.Children)

	img, ok := root.Children[1].(*Element)
	require.True(t, ok)
	assert.Equal(t, "ac:image", img.Name)
	assert.True(t, img.Namespaced())
	assert.Equal(t, "Pic", img.Attr("ac:alt"))

	refs := img.ChildElements("ri:attachment")
	require.Len(t, refs, 1)
	assert.Equal(t, "a.png", refs[0].Attr("ri:filename"))

	assert.Equal(t, &Text{Data: "tail"}, root.Children[2])
}

func TestParseDecodesEntities(t *testing.T) {
	doc, err := Parse(`<p>a&nbsp;&amp;&lt;b</p>`)
	require.NoError(t, err)
	require.NoError(t, doc.Recovered)

	p := doc.Root.Children[0].(*Element)
	assert.Equal(t, []Node{&Text{Data: "a &<b"}}, p.Children)
}

func TestParseCDATAIsText(t *testing.T) {
	doc, err := Parse(`<pre><![CDATA[x < y]]></pre>`)
	require.NoError(t, err)

	pre := doc.Root.Children[0].(*Element)
	var text string
	for _, c := range pre.Children {
		text += c.(*Text).Data
	}
	assert.Equal(t, "x < y", text)
}

func TestParseRecoversMalformedInput(t *testing.T) {
	doc, err := Parse(`<p>1 < 2</p>`)
	require.NoError(t, err)
	require.Error(t, doc.Recovered)

	require.Len(t, doc.Root.Children, 1)
	p, ok := doc.Root.Children[0].(*Element)
	require.True(t, ok)
	assert.Equal(t, "p", p.Name)
	assert.Equal(t, []Node{&Text{Data: "1 < 2"}}, p.Children)
}

func TestParseUnclosedElements(t *testing.T) {
	doc, err := Parse(`<p>open<ri:attachment ri:filename="x.png">`)
	require.NoError(t, err)

	require.Len(t, doc.Root.Children, 1)
	p, ok := doc.Root.Children[0].(*Element)
	require.True(t, ok)
	assert.Equal(t, "p", p.Name)
	require.Len(t, p.Children, 2)
	assert.Equal(t, &Text{Data: "open"}, p.Children[0])

	ref := p.Children[1].(*Element)
	assert.Equal(t, "ri:attachment", ref.Name)
	assert.Equal(t, "x.png", ref.Attr("ri:filename"))
}

func TestElementAttrDefaults(t *testing.T) {
	el := NewElement("A")
	assert.Equal(t, "a", el.Name)
	assert.Equal(t, "", el.Attr("href"))

	el.SetAttr("HREF", "one")
	el.SetAttr("href", "two")
	assert.Equal(t, "one", el.Attr("href"))

	var bare Element
	assert.Equal(t, "", bare.Attr("x"))
	bare.SetAttr("x", "y")
	assert.Equal(t, "y", bare.Attr("x"))
}
