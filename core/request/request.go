// Package request decodes conversion requests. A request is either a JSON
// document carrying the xhtml and its options, or the raw xhtml itself.
package request

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/xhtml2md/core"
)

// ErrMissingXHTML is returned when a request carries no xhtml.
var ErrMissingXHTML = errors.New("missing 'xhtml' in request body")

// Request is a decoded conversion request.
type Request struct {
	XHTML   string
	Options core.Options
}

type document struct {
	XHTML                 json.RawMessage `json:"xhtml"`
	BaseURL               json.RawMessage `json:"base_url"`
	PageID                json.RawMessage `json:"page_id"`
	AttachmentURLTemplate json.RawMessage `json:"attachment_url_template"`
	PreferAbsoluteURLs    json.RawMessage `json:"prefer_absolute_urls"`
}

// Decode reads a request body. Bodies that are not valid JSON are taken as
// raw xhtml. When isBase64 is set the body is base64-decoded first.
func Decode(body []byte, isBase64 bool) (*Request, error) {
	if isBase64 && len(body) > 0 {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(body)))
		if err != nil {
			return nil, fmt.Errorf("decoding base64 body: %w", err)
		}
		body = decoded
	}

	var req Request
	var doc document
	switch {
	case len(bytes.TrimSpace(body)) == 0:
	case json.Valid(body):
		// Valid JSON that is not an object leaves doc empty.
		_ = json.Unmarshal(body, &doc)
		req.XHTML = scalar(doc.XHTML)
		req.Options = core.Options{
			BaseURL:               scalar(doc.BaseURL),
			PageID:                scalar(doc.PageID),
			AttachmentURLTemplate: scalar(doc.AttachmentURLTemplate),
			PreferAbsoluteURLs:    truthy(doc.PreferAbsoluteURLs),
		}
	default:
		req.XHTML = string(body)
	}

	if req.XHTML == "" {
		return nil, ErrMissingXHTML
	}
	return &req, nil
}

// scalar stringifies a truthy JSON string, number or boolean. Falsy values
// such as 0 and false, and anything else, are "".
func scalar(raw json.RawMessage) string {
	var v any
	if !truthy(raw) || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case float64, bool:
		return strings.TrimSpace(string(raw))
	default:
		return ""
	}
}

// truthy follows the usual loose rules: false, 0, "", null and absent are
// false, everything else is true.
func truthy(raw json.RawMessage) bool {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
