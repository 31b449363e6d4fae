// Package attachment builds media URLs for page attachments.
package attachment

import (
	"net/url"
	"strings"

	"github.com/gaurav-prasanna/xhtml2md/core"
)

// componentUnescaper restores the characters url.QueryEscape encodes but
// URI components leave alone, and switches spaces to %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s as a single URI component.
// Only A-Z a-z 0-9 and - _ . ! ~ * ' ( ) pass through unchanged.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BuildURL computes the URL of an attached file.
//
// The template's first {page_id} is replaced by the trimmed page id and its
// first {filename} by the encoded, trimmed filename. An empty template means
// core.DefaultAttachmentURLTemplate. With absolute set and a non-empty
// baseURL, the result is prefixed with baseURL minus one trailing slash.
func BuildURL(filename, baseURL, pageID, template string, absolute bool) string {
	if template == "" {
		template = core.DefaultAttachmentURLTemplate
	}

	rel := strings.Replace(template, "{page_id}", strings.TrimSpace(pageID), 1)
	rel = strings.Replace(rel, "{filename}", EncodeComponent(strings.TrimSpace(filename)), 1)

	if absolute && baseURL != "" {
		return strings.TrimSuffix(baseURL, "/") + rel
	}
	return rel
}

// ForOptions is BuildURL with the media settings taken from opts.
func ForOptions(filename string, opts core.Options) string {
	return BuildURL(filename, opts.BaseURL, opts.PageID, opts.Template(), opts.PreferAbsoluteURLs)
}
