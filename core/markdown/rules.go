package markdown

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Rule overrides the engine's rendering of one tag.
type Rule struct {
	Tag    string
	// Block rules render on their own lines; the rest are inline.
	Block  bool
	Render func(n *html.Node) string
}

// Matches reports whether the rule applies to n.
func (r Rule) Matches(n *html.Node) bool {
	return n.Type == html.ElementNode && dom.NodeName(n) == r.Tag
}

// DefaultRules are consulted, in order, before the engine's own renderers.
var DefaultRules = []Rule{
	{Tag: "table", Block: true, Render: renderTable},
	{Tag: "br", Render: renderLineBreak},
}

func renderLineBreak(*html.Node) string {
	return "  \n"
}

// renderTable emits a pipe table. The first row is always the header.
func renderTable(n *html.Node) string {
	rows := TableRows(n)
	if len(rows) == 0 {
		return ""
	}

	header := rows[0]
	separator := make([]string, len(header))
	for i := range separator {
		separator[i] = "---"
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, pipeRow(header), pipeRow(separator))
	for _, row := range rows[1:] {
		lines = append(lines, pipeRow(row))
	}
	return "\n" + strings.Join(lines, "\n") + "\n\n"
}

// TableRows extracts the trimmed, pipe-escaped cell text of every tr below n.
func TableRows(n *html.Node) [][]string {
	var rows [][]string
	goquery.NewDocumentFromNode(n).Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, escapePipes(strings.TrimSpace(cell.Text())))
		})
		rows = append(rows, cells)
	})
	return rows
}

func pipeRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
