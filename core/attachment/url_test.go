package attachment

import (
	"testing"

	"github.com/gaurav-prasanna/xhtml2md/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		baseURL  string
		pageID   string
		template string
		absolute bool
		want     string
	}{
		{"default template encodes space", "a b.png", "", "", "", false, "/img/a%20b.png"},
		{"absolute with page id", "x.png", "https://h/", "1", "/img/{page_id}/{filename}", true, "https://h/img/1/x.png"},
		{"absolute without base url", "x.png", "", "1", "/img/{page_id}/{filename}", true, "/img/1/x.png"},
		{"relative ignores base url", "x.png", "https://h", "1", "/img/{filename}", false, "/img/x.png"},
		{"only one trailing slash removed", "x.png", "https://h//", "", "", true, "https://h//img/x.png"},
		{"empty filename", "", "", "", "", false, "/img/"},
		{"values are trimmed", "  x.png ", "", " 42 ", "/p/{page_id}/{filename}", false, "/p/42/x.png"},
		{"page id is not encoded", "x.png", "", "a b", "/p/{page_id}/{filename}", false, "/p/a b/x.png"},
		{"first occurrence only", "x.png", "", "7", "/{page_id}/{page_id}/{filename}/{filename}", false, "/7/{page_id}/x.png/{filename}"},
		{"template without tokens", "x.png", "", "7", "/static/logo.png", false, "/static/logo.png"},
		{"reserved characters", "r&d/100%.png", "", "", "", false, "/img/r%26d%2F100%25.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.filename, tt.baseURL, tt.pageID, tt.template, tt.absolute))
		})
	}
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "A-z_0.9!~*'()", EncodeComponent("A-z_0.9!~*'()"))
	assert.Equal(t, "%20%2B%3A%40%3D%3F%23", EncodeComponent(" +:@=?#"))
	assert.Equal(t, "%C3%A4.png", EncodeComponent("ä.png"))
}

func TestForOptions(t *testing.T) {
	opts := core.Options{
		BaseURL:               "https://wiki.example.com/",
		PageID:                "123456",
		AttachmentURLTemplate: "/download/attachments/{page_id}/{filename}",
		PreferAbsoluteURLs:    true,
	}
	assert.Equal(t, "https://wiki.example.com/download/attachments/123456/diagram.png", ForOptions("diagram.png", opts))
}

func TestForOptionsDefaultTemplate(t *testing.T) {
	opts := core.Options{PageID: "7"}
	assert.Equal(t, opts.Template(), core.DefaultAttachmentURLTemplate)
	assert.Equal(t, "/img/a%20b.png", ForOptions("a b.png", opts))
}
