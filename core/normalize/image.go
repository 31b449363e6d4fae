package normalize

import (
	"strings"

	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/gaurav-prasanna/xhtml2md/core/attachment"
	"github.com/gaurav-prasanna/xhtml2md/core/xmltree"
)

const (
	imageMacro    = "ac:image"
	attachmentRef = "ri:attachment"
	urlRef        = "ri:url"
)

// ImageSource is the outcome of resolving an image macro.
// An empty Src means nothing resolved and only Alt survives as text.
type ImageSource struct {
	Src string
	Alt string
}

// Resolved reports whether the macro produced an image URL.
func (s ImageSource) Resolved() bool {
	return s.Src != ""
}

// ResolveImage finds the source of an ac:image macro. Attachment references
// win over URL references; the first non-empty one of each kind is used.
func ResolveImage(el *xmltree.Element, opts core.Options) ImageSource {
	alt := strings.TrimSpace(el.Attr("ac:alt"))
	if alt == "" {
		alt = strings.TrimSpace(el.Attr("alt"))
	}

	for _, ref := range el.ChildElements(attachmentRef) {
		filename := strings.TrimSpace(ref.Attr("ri:filename"))
		if filename == "" {
			continue
		}
		if alt == "" {
			alt = filename
		}
		return ImageSource{Src: attachment.ForOptions(filename, opts), Alt: alt}
	}

	for _, ref := range el.ChildElements(urlRef) {
		if value := strings.TrimSpace(ref.Attr("ri:value")); value != "" {
			return ImageSource{Src: value, Alt: alt}
		}
	}

	return ImageSource{Alt: alt}
}

func (w walker) image(el *xmltree.Element) string {
	src := ResolveImage(el, w.opts)
	if !src.Resolved() {
		return src.Alt
	}
	return `<img src="` + escapeAttr(src.Src) + `" alt="` + escapeAttr(src.Alt) + `" />`
}
