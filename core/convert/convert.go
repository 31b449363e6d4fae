// Package convert chains the pipeline stages behind a single call:
// storage-format XHTML → allow-listed HTML → Markdown.
package convert

import (
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/gaurav-prasanna/xhtml2md/core/markdown"
	"github.com/gaurav-prasanna/xhtml2md/core/normalize"
)

// Converter runs the normalize and markdown stages.
// It holds no per-call state and is safe for concurrent use.
type Converter struct {
	logger     *slog.Logger
	normalizer core.Normalizer
	renderer   core.MarkdownRenderer
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithNormalizer replaces the normalize stage.
func WithNormalizer(n core.Normalizer) Option {
	return func(c *Converter) {
		c.normalizer = n
	}
}

// WithRenderer replaces the markdown stage.
func WithRenderer(r core.MarkdownRenderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	if c.normalizer == nil {
		c.normalizer = normalize.New(c.logger)
	}
	if c.renderer == nil {
		c.renderer = markdown.New()
	}
	return c
}

// Convert turns a storage-format document into Markdown ending in exactly
// one newline. Rendering failures come back as *markdown.RenderError.
func (c *Converter) Convert(xhtml string, opts core.Options) (string, error) {
	normalized, err := c.normalizer.Normalize(xhtml, opts)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	md, err := c.renderer.Render(normalized)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	c.logger.Debug("converted document",
		"page_id", opts.PageID,
		"xhtml_bytes", len(xhtml),
		"html_bytes", len(normalized),
		"markdown_bytes", len(md),
	)
	return md, nil
}

// Convert is a one-shot conversion with a fresh Converter.
func Convert(xhtml string, opts core.Options) (string, error) {
	return New().Convert(xhtml, opts)
}
