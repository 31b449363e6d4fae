package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAttachmentURLTemplate is used when Options.AttachmentURLTemplate is empty.
const DefaultAttachmentURLTemplate = "/img/{filename}"

// Options configures a single conversion.
type Options struct {
	// BaseURL is the root for absolute media URLs.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// PageID is substituted for {page_id}. Treated as an opaque string.
	PageID string `json:"page_id" yaml:"page_id"`
	// AttachmentURLTemplate supports the {page_id} and {filename} tokens.
	AttachmentURLTemplate string `json:"attachment_url_template" yaml:"attachment_url_template"`
	// PreferAbsoluteURLs prefixes media URLs with BaseURL when it is set.
	PreferAbsoluteURLs bool `json:"prefer_absolute_urls" yaml:"prefer_absolute_urls"`
}

// Template returns the attachment URL template, falling back to the default.
func (o Options) Template() string {
	if o.AttachmentURLTemplate == "" {
		return DefaultAttachmentURLTemplate
	}
	return o.AttachmentURLTemplate
}

// Merge overlays the non-empty fields of other onto o.
func (o Options) Merge(other Options) Options {
	if other.BaseURL != "" {
		o.BaseURL = other.BaseURL
	}
	if other.PageID != "" {
		o.PageID = other.PageID
	}
	if other.AttachmentURLTemplate != "" {
		o.AttachmentURLTemplate = other.AttachmentURLTemplate
	}
	if other.PreferAbsoluteURLs {
		o.PreferAbsoluteURLs = true
	}
	return o
}

// LoadOptions reads Options from a YAML or JSON file.
func LoadOptions(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}
