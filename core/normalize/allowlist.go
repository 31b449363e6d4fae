package normalize

// TagPolicy says how an allow-listed tag is re-emitted.
type TagPolicy struct {
	// Void tags are emitted self-closing without children.
	Void bool
	// Attrs lists the attributes preserved, in output order.
	Attrs []string
}

// allowlist is the fixed set of tags that survive normalization.
var allowlist = map[string]TagPolicy{
	"p":      {},
	"br":     {Void: true},
	"strong": {},
	"b":      {},
	"em":     {},
	"i":      {},
	"code":   {},
	"pre":    {},
	"a":      {Attrs: []string{"href"}},
	"ul":     {},
	"ol":     {},
	"li":     {},
	"h1":     {},
	"h2":     {},
	"h3":     {},
	"h4":     {},
	"h5":     {},
	"h6":     {},
	"img":    {Void: true, Attrs: []string{"src", "alt"}},
	"table":  {},
	"tr":     {},
	"th":     {},
	"td":     {},
}

// Policy returns the policy for tag and whether tag is allow-listed.
func Policy(tag string) (TagPolicy, bool) {
	p, ok := allowlist[tag]
	return p, ok
}

// AllowedTags returns the allow-listed tag names.
func AllowedTags() []string {
	tags := make([]string, 0, len(allowlist))
	for tag := range allowlist {
		tags = append(tags, tag)
	}
	return tags
}
