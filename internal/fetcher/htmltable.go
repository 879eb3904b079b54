package fetcher

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// Table is one HTML table flattened to text cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// ExtractTables parses an HTML document and returns every table whose class
// list contains classFilter (empty filter matches all tables). Cell text is
// whitespace-collapsed; the first header row (th cells) becomes Header.
func ExtractTables(r io.Reader, classFilter string) ([]Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, eris.Wrap(err, "htmltable: parse document")
	}

	var tables []Table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if classFilter == "" || hasClass(n, classFilter) {
				tables = append(tables, flattenTable(n))
			}
			return // nested tables inside a matched table are not split out
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return tables, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func flattenTable(table *html.Node) Table {
	var t Table

	var walkRows func(n *html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells, isHeader := flattenRow(n)
			if len(cells) == 0 {
				return
			}
			if isHeader && t.Header == nil && len(t.Rows) == 0 {
				t.Header = cells
			} else {
				t.Rows = append(t.Rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)

	return t
}

func flattenRow(tr *html.Node) (cells []string, isHeader bool) {
	allHeader := true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			cells = append(cells, cellText(c))
		case "td":
			allHeader = false
			cells = append(cells, cellText(c))
		}
	}
	return cells, allHeader && len(cells) > 0
}

// cellText collects the text content of a cell, skipping footnote superscripts
// and hidden sort keys that Wikipedia embeds in data cells.
func cellText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "sup" || n.Data == "style" || n.Data == "script" {
				return
			}
			if hasHiddenSpan(n) {
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func hasHiddenSpan(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key == "style" && strings.Contains(strings.ReplaceAll(attr.Val, " ", ""), "display:none") {
			return true
		}
	}
	return false
}
