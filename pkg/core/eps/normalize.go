package eps

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// NUMERIC NORMALIZER - Raw cell text -> signed decimal string
// =============================================================================

var (
	decimalToken      = regexp.MustCompile(`\d+\.\d+`)
	numberToken       = regexp.MustCompile(`\d+(?:\.\d+)?`)
	closedParenNumber = regexp.MustCompile(`\((\d+(?:\.\d+)?)\)`)
	integerToken      = regexp.MustCompile(`\b\d+\b`)
	leadingMinus      = regexp.MustCompile(`^\s*[-−–]`)

	// currencyStripper removes currency symbols and thousands separators
	currencyStripper = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", ",", "")
)

// Footnote heuristic: a bare integer of at most footnoteMaxDigits digits and
// value at most footnoteMaxValue is treated as a superscript reference.
// Empirical thresholds.
const (
	footnoteMaxDigits = 2
	footnoteMaxValue  = 20
	// footnoteContext is how much longer than the token the text must be
	// before a footnote-sized integer is accepted as a value.
	footnoteContext = 3
)

// Number is a value recovered from one cell.
type Number struct {
	Value string // Signed decimal string, e.g. "-0.30"
	// OpenParen is set when the cell opens a parenthesis it never closes.
	// The value is already negative; the closing ")" usually sits in a later cell.
	OpenParen bool
}

// Normalize converts raw cell text into a signed decimal string.
// Returns false when the text carries no usable number.
func Normalize(text string) (string, bool) {
	n, ok := ParseNumber(text)
	return n.Value, ok
}

// ParseNumber is Normalize plus the split-parenthesis signal.
func ParseNumber(text string) (Number, bool) {
	cleaned := cleanCell(text)
	if cleaned == "" || cleaned == ")" {
		return Number{}, false
	}

	openParen := strings.HasPrefix(cleaned, "(") && !strings.HasSuffix(cleaned, ")")

	// Decimal-first: "1.25 (2)" is a value with a footnote marker, not 2
	if tok := decimalToken.FindString(cleaned); tok != "" {
		switch {
		case strings.Contains(cleaned, "("+tok+")"), strings.Contains(cleaned, "( "+tok+" )"):
			return Number{Value: "-" + tok, OpenParen: openParen}, true
		case leadingMinus.MatchString(cleaned):
			return Number{Value: "-" + tok}, true
		case openParen:
			return Number{Value: "-" + tok, OpenParen: true}, true
		}
		return Number{Value: tok}, true
	}

	if openParen {
		if tok := numberToken.FindString(cleaned); tok != "" {
			return Number{Value: "-" + tok, OpenParen: true}, true
		}
	}

	if strings.Contains(cleaned, "(") && strings.Contains(cleaned, ")") {
		if m := closedParenNumber.FindStringSubmatch(cleaned); m != nil {
			return Number{Value: "-" + m[1]}, true
		}
	}

	if leadingMinus.MatchString(cleaned) {
		if tok := numberToken.FindString(cleaned); tok != "" {
			return Number{Value: "-" + tok}, true
		}
	}

	if tok, ok := pickInteger(cleaned); ok {
		return Number{Value: tok}, true
	}
	return Number{}, false
}

// pickInteger scans bare integers, skipping footnote-sized ones.
// The first non-footnote integer wins. If only footnote-sized integers exist,
// the largest is accepted when it is embedded in enough surrounding text.
func pickInteger(cleaned string) (string, bool) {
	tokens := integerToken.FindAllString(cleaned, -1)
	if len(tokens) == 0 {
		return "", false
	}

	for _, tok := range tokens {
		if !isFootnoteSized(tok) {
			return tok, true
		}
	}

	largest, largestVal := tokens[0], -1
	for _, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if v > largestVal {
			largest, largestVal = tok, v
		}
	}

	if utf8.RuneCountInString(cleaned) > len(largest)+footnoteContext {
		return largest, true
	}
	return "", false
}

func isFootnoteSized(tok string) bool {
	if len(tok) > footnoteMaxDigits {
		return false
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return false
	}
	return v <= footnoteMaxValue
}

func cleanCell(text string) string {
	return strings.TrimSpace(currencyStripper.Replace(text))
}

// isBareOpenParen reports a cell holding nothing but "(", the first half of
// a negative whose digits and ")" were rendered in later cells.
func isBareOpenParen(text string) bool {
	return cleanCell(text) == "("
}

func isBareCloseParen(text string) bool {
	return cleanCell(text) == ")"
}
