package eps

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FINAL EPS RESOLVER - Many occurrences -> one figure per document
// =============================================================================

// Priority weights
const (
	scoreBasic       = 100
	scoreGAAP        = 50
	scoreBasicText   = 30
	scoreDilutedText = 20
	scoreImplausible = -1000
)

var (
	sharesOutstanding = regexp.MustCompile(`(?i)shares\s*outstanding`)

	// Per-share values outside this band are not plausible EPS
	plausibleMin = decimal.NewFromInt(-100)
	plausibleMax = decimal.NewFromInt(100)
)

// Resolution explains how the final value was chosen.
type Resolution struct {
	Value  string
	Found  bool
	Group  []Occurrence // Top-scoring row_text group, best first
	Summed bool         // Group values differed and were added together
}

// Resolve returns the single EPS figure for a document, or false when no
// usable occurrence exists.
func Resolve(occurrences []Occurrence) (string, bool) {
	r := ResolveDetail(occurrences)
	return r.Value, r.Found
}

// ResolveDetail ranks the occurrences, takes the row_text group holding the
// best one, and collapses it to a value. Differing values under one label
// are summed, formatted with the decimal places of the group's first value.
func ResolveDetail(occurrences []Occurrence) Resolution {
	kept := make([]Occurrence, 0, len(occurrences))
	for _, o := range occurrences {
		if !sharesOutstanding.MatchString(o.RowText) {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return Resolution{}
	}

	scores := make([]int, len(kept))
	order := make([]int, len(kept))
	for i, o := range kept {
		order[i] = i
		scores[i] = Score(o)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	// Ties keep document order, so the first group is the one holding the
	// earliest of the best-scoring occurrences.
	topText := kept[order[0]].RowText
	var group []Occurrence
	for _, idx := range order {
		if kept[idx].RowText == topText {
			group = append(group, kept[idx])
		}
	}

	first := group[0].Value
	if allEqual(group) {
		return Resolution{Value: first, Found: true, Group: group}
	}

	sum := decimal.Zero
	for _, o := range group {
		d, err := decimal.NewFromString(o.Value)
		if err != nil {
			return Resolution{Value: first, Found: true, Group: group}
		}
		sum = sum.Add(d)
	}
	return Resolution{
		Value:  sum.StringFixed(decimalPlaces(first)),
		Found:  true,
		Group:  group,
		Summed: true,
	}
}

// Score ranks an occurrence; higher is preferred.
func Score(o Occurrence) int {
	score := 0
	if o.Basic {
		score += scoreBasic
	}
	if o.GAAP {
		score += scoreGAAP
	}

	text := strings.ToLower(o.RowText)
	if strings.Contains(text, "basic") {
		score += scoreBasicText
	} else if strings.Contains(text, "diluted") {
		score += scoreDilutedText
	}

	if d, ok := o.Decimal(); ok {
		if d.LessThan(plausibleMin) || d.GreaterThan(plausibleMax) {
			score += scoreImplausible
		}
	}
	return score
}

func allEqual(group []Occurrence) bool {
	for _, o := range group[1:] {
		if o.Value != group[0].Value {
			return false
		}
	}
	return true
}

func decimalPlaces(value string) int32 {
	dot := strings.LastIndex(value, ".")
	if dot < 0 {
		return 0
	}
	return int32(len(value) - dot - 1)
}
