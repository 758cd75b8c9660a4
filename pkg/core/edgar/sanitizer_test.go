package edgar

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func TestHTMLSanitizer_RemoveNoise(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantText string
		dropText string
	}{
		{
			name:     "Script inside a cell is dropped",
			html:     `<table><tr><td>Basic EPS<script>var x = 12.5;</script></td><td>1.10</td></tr></table>`,
			wantText: "Basic EPS",
			dropText: "12.5",
		},
		{
			name:     "Hidden XBRL header is dropped",
			html:     `<div style="display:none"><table><tr><td>dei 2023.12</td></tr></table></div><table><tr><td>EPS</td></tr></table>`,
			wantText: "EPS",
			dropText: "dei",
		},
		{
			name:     "Visible text is kept",
			html:     `<table><tr><td>Diluted loss per share</td><td>(0.30)</td></tr></table>`,
			wantText: "(0.30)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.html)
			NewHTMLSanitizer().Sanitize(doc)

			text := doc.Text()
			if !strings.Contains(text, tt.wantText) {
				t.Errorf("Expected text '%s' in result, got: %s", tt.wantText, text)
			}
			if tt.dropText != "" && strings.Contains(text, tt.dropText) {
				t.Errorf("Expected '%s' to be removed, got: %s", tt.dropText, text)
			}
		})
	}
}

func TestHTMLSanitizer_UnwrapInlineXBRL(t *testing.T) {
	html := `<table><tr><td>Basic</td><td>(<ix:nonFraction name="us-gaap:EarningsPerShareBasic" sign="-">0.42</ix:nonFraction>)</td></tr></table>`

	doc := mustDoc(t, html)
	s := NewHTMLSanitizer()
	s.Sanitize(doc)

	if doc.Find("ix\\:nonfraction").Length() != 0 {
		t.Error("Expected ix:nonFraction to be unwrapped")
	}
	got := strings.TrimSpace(doc.Find("td").Last().Text())
	if got != "(0.42)" {
		t.Errorf("Expected cell text (0.42), got %q", got)
	}
}

func TestHTMLSanitizer_RemovedCount(t *testing.T) {
	doc := mustDoc(t, `<body><style>p{}</style><script></script><p hidden>x</p><p>y</p></body>`)
	s := NewHTMLSanitizer()
	s.Sanitize(doc)

	if s.RemovedCount() != 3 {
		t.Errorf("Expected 3 removed elements, got %d", s.RemovedCount())
	}
}
