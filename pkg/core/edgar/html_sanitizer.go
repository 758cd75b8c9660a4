package edgar

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLSanitizer strips markup from an EDGAR filing that carries no table content
// but would otherwise leak into row text.
// Addresses two issues:
// 1. Script/style bodies, which goquery's Text() returns verbatim
// 2. Hidden blocks (inline XBRL headers live in display:none divs)
type HTMLSanitizer struct {
	removed int
}

// NewHTMLSanitizer creates a new sanitizer instance
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{}
}

// Sanitize removes noise from doc in place.
func (s *HTMLSanitizer) Sanitize(doc *goquery.Document) {
	s.RemoveNoise(doc)
	s.UnwrapInlineXBRL(doc)
}

// RemoveNoise strips elements that never hold visible table text.
func (s *HTMLSanitizer) RemoveNoise(doc *goquery.Document) {
	noise := doc.Find("script, style, noscript, template")
	s.removed += noise.Length()
	noise.Remove()

	hidden := doc.Find("[hidden], [style*='display:none'], [style*='display: none']")
	s.removed += hidden.Length()
	hidden.Remove()
}

// UnwrapInlineXBRL replaces ix:nonFraction and friends by their text so cell
// text reads the same as in a plain HTML filing. The sign of an ix:nonFraction
// lives in a sign="-" attribute; the rendered parentheses around it are kept,
// so no sign handling is needed here.
func (s *HTMLSanitizer) UnwrapInlineXBRL(doc *goquery.Document) {
	doc.Find("ix\\:nonfraction, ix\\:nonnumeric, ix\\:fraction").Each(func(i int, sel *goquery.Selection) {
		sel.ReplaceWithSelection(sel.Contents())
	})
}

// RemovedCount returns how many elements were dropped as noise.
func (s *HTMLSanitizer) RemovedCount() int {
	return s.removed
}

// cellText returns the trimmed visible text of a cell.
func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
