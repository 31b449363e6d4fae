// Package core defines the conversion pipeline interfaces for xhtml2md.
// Each stage of the pipeline is a clean, testable interface.
package core

// PageMetadata describes a converted page for the output renderers.
type PageMetadata struct {
	Source      string `json:"source"`
	PageID      string `json:"page_id,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
	Title       string `json:"title"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Heading represents a single heading found in the converted Markdown.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the converted Markdown.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Image represents an image reference found in the converted Markdown.
type Image struct {
	Alt string `json:"alt"`
	Src string `json:"src"`
}

// PageContent holds the converted Markdown.
type PageContent struct {
	Markdown string `json:"markdown"`
}

// PageStructure holds structural metadata parsed from the converted Markdown.
type PageStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	Images     []Image   `json:"images"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	ListItems  int       `json:"list_items"`
}

// PageJSON is the complete JSON output for a single page.
type PageJSON struct {
	Metadata  PageMetadata  `json:"metadata"`
	Content   PageContent   `json:"content"`
	Structure PageStructure `json:"structure"`
}

// Normalizer turns storage-format XHTML into allow-listed HTML.
type Normalizer interface {
	Normalize(xhtml string, opts Options) (string, error)
}

// MarkdownRenderer turns normalized HTML into Markdown.
type MarkdownRenderer interface {
	Render(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
