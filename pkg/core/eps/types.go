package eps

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DOCUMENT TREE - What the HTML adapter hands to the extractor
// =============================================================================

// Document is an ordered sequence of tables parsed from one filing.
type Document struct {
	Tables []Table
}

// Table is an ordered sequence of rows. Its position in Document.Tables is the table_idx.
type Table struct {
	Rows []Row
}

// Row holds the visible text of a table row and the text of its value cells.
type Row struct {
	Text  string   // Visible text of the whole row, nested markup stripped
	Cells []string // Visible text of each data cell, in order
}

// LabelText returns the normalized rendering used for classification:
// lowercased, trimmed, colons removed.
// Non-breaking and other Unicode spaces become plain spaces so the label
// patterns see "earnings per share" however the filing spaced it.
func (r Row) LabelText() string {
	text := strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return ' '
		}
		return c
	}, r.Text)
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(text)), ":", "")
}

// =============================================================================
// EXTRACTION RESULTS
// =============================================================================

// maxRowTextLen is the number of characters of row text kept on an Occurrence.
const maxRowTextLen = 100

// Candidate is one numeric value recovered from a cell, tagged with the
// classification of the row it came from at the time it was parsed.
type Candidate struct {
	Value   string
	Basic   bool
	Diluted bool
	GAAP    bool
}

// Occurrence is the resolution of one EPS-labeled row to a representative value.
type Occurrence struct {
	TableIdx  int      `json:"table_idx"`
	RowText   string   `json:"row_text"`
	Basic     bool     `json:"basic"`
	Diluted   bool     `json:"diluted"`
	GAAP      bool     `json:"gaap"`
	Value     string   `json:"value"`
	AllValues []string `json:"all_values"`
}

// Decimal parses Value. The boolean is false when Value is not a decimal.
func (o Occurrence) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(o.Value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
