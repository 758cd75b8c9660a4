// Package edgar - HTML filing loader for EPS extraction
package edgar

import (
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"eps_parser/pkg/core/eps"
)

// =============================================================================
// FILING LOADER - HTML bytes -> eps.Document (tables / rows / cells)
// =============================================================================

// OpenFiling reads and parses an HTML filing from disk.
func OpenFiling(path string) (eps.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return eps.Document{}, fmt.Errorf("failed to open filing: %w", err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return eps.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument decodes a filing (honouring its declared or sniffed charset),
// removes noise and builds the table tree.
func ParseDocument(r io.Reader) (eps.Document, error) {
	utf8Reader, err := charset.NewReader(r, "text/html")
	if err != nil {
		return eps.Document{}, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return eps.Document{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	NewHTMLSanitizer().Sanitize(doc)
	return BuildDocument(doc), nil
}

// BuildDocument walks every <table> (nested ones included, in document order)
// and every <tr> beneath it. Row text covers all cells, header cells too;
// value cells are the <td> elements only.
func BuildDocument(doc *goquery.Document) eps.Document {
	var out eps.Document

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		var t eps.Table
		table.Find("tr").Each(func(j int, tr *goquery.Selection) {
			row := eps.Row{Text: tr.Text()}
			tr.Find("td").Each(func(k int, td *goquery.Selection) {
				row.Cells = append(row.Cells, cellText(td))
			})
			t.Rows = append(t.Rows, row)
		})
		out.Tables = append(out.Tables, t)
	})

	return out
}
