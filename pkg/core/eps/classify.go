package eps

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// LABEL CLASSIFIER - Which rows carry per-share values, and which variant
// =============================================================================

// ErrUnclassifiable is returned by ClassifyVariant for text it cannot inspect.
var ErrUnclassifiable = errors.New("eps: row text cannot be classified")

// labelPatterns are evaluated in order; the first hit decides.
var labelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:basic|diluted)?\s*earnings\s*(?:\(loss\))?\s*per\s*(?:common|outstanding|ordinary)?\s*share`),
	regexp.MustCompile(`(?:basic|diluted)?\s*loss\s*per\s*(?:common|outstanding|ordinary)?\s*share`),
	regexp.MustCompile(`earnings\s*\(loss\)\s*per\s*(?:common|outstanding|ordinary)?\s*share`),
	regexp.MustCompile(`net\s*(?:income|loss|earnings)\s*(?:attributable\s*to\s*[a-z\s]+)?\s*per\s*share`),
	regexp.MustCompile(`income\s*\(loss\)\s*per\s*share`),
	regexp.MustCompile(`\beps\b`),
	regexp.MustCompile(`earnings\s*per\s*share`),
	regexp.MustCompile(`net\s+income\s+available\s+to\s+common\s+stockholders\s+per\s+share`),
	regexp.MustCompile(`net\s+income\s+per\s+common\s+share`),
	regexp.MustCompile(`net\s*(?:\(loss\)\s*income|income\s*\(loss\))\s*per\s*share`),
}

var (
	// Share-count rows sit next to EPS rows and reuse their vocabulary
	shareCountPattern = regexp.MustCompile(`weighted|average|shares\s*outstanding`)

	basicWord        = regexp.MustCompile(`\bbasic\b`)
	dilutedWord      = regexp.MustCompile(`\bdiluted\b`)
	combinedVariants = regexp.MustCompile(`basic\s+(?:and|&)\s+diluted|diluted\s+(?:and|&)\s+basic`)

	nonGAAPPattern = regexp.MustCompile(`non-gaap|non\s*gaap|adjusted`)
)

// IsEPSLabel reports whether row text names a per-share earnings metric.
func IsEPSLabel(rowText string) bool {
	text := strings.ToLower(strings.TrimSpace(rowText))
	if shareCountPattern.MatchString(text) {
		return false
	}
	for _, p := range labelPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Variant is the basic/diluted flavour of an EPS row.
type Variant struct {
	Basic   bool
	Diluted bool
}

// Both reports a combined "basic and diluted" figure.
func (v Variant) Both() bool {
	return v.Basic && v.Diluted
}

// ClassifyVariant detects the whole words "basic" and "diluted".
// "basic and diluted" (either order, "and" or "&") sets both.
//
// On ErrUnclassifiable the returned Variant is the zero value, the same as
// text that mentions neither word. Callers that only need the flags may
// ignore the error.
func ClassifyVariant(rowText string) (Variant, error) {
	if !utf8.ValidString(rowText) {
		return Variant{}, ErrUnclassifiable
	}
	text := strings.ToLower(rowText)
	if combinedVariants.MatchString(text) {
		return Variant{Basic: true, Diluted: true}, nil
	}
	return Variant{
		Basic:   basicWord.MatchString(text),
		Diluted: dilutedWord.MatchString(text),
	}, nil
}

// ClassifyGAAP is true unless the text marks the figure as non-GAAP or adjusted.
func ClassifyGAAP(rowText string) bool {
	return !nonGAAPPattern.MatchString(strings.ToLower(rowText))
}
