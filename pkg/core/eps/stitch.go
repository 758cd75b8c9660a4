package eps

import (
	"strings"

	"go.uber.org/zap"
)

// =============================================================================
// ROW-PAIR STITCHER - Label row + following value rows -> candidates
// =============================================================================

// Context is the classification carried while the stitcher advances rows.
type Context struct {
	Variant
	GAAP bool
}

// StitchResult is what one label match produced.
type StitchResult struct {
	Candidates []Candidate
	Context    Context // Classification in force when scanning stopped
	LastRow    int     // Index of the last row scanned
}

// Stitch gathers numeric candidates for the label row at index i.
// Filings often put the label in one row and its figures in the next, so when
// row i has no number the following rows are scanned until one does.
func Stitch(table Table, i int) StitchResult {
	return stitch(table, i, zap.NewNop())
}

func stitch(table Table, i int, logger *zap.Logger) StitchResult {
	if i < 0 || i >= len(table.Rows) {
		return StitchResult{LastRow: i}
	}

	label := table.Rows[i].LabelText()
	ctx := Context{
		Variant: classifyVariant(label, logger),
		GAAP:    ClassifyGAAP(label),
	}

	var sc cellScanner
	candidates := sc.scanRow(table.Rows[i], ctx, logger)

	j := i
	for len(candidates) == 0 && j+1 < len(table.Rows) {
		j++
		next := table.Rows[j].LabelText()
		logger.Debug("[EPS] no value yet, checking next row",
			zap.Int("row", j), zap.String("text", truncateRunes(next, maxRowTextLen)))

		// A confirmed "basic and diluted" label is never downgraded, and a
		// bare value row without a qualifier keeps the label's variant
		if !ctx.Both() {
			if v := classifyVariant(next, logger); v != (Variant{}) {
				ctx.Variant = v
			}
		}
		ctx.GAAP = ClassifyGAAP(next)

		candidates = append(candidates, sc.scanRow(table.Rows[j], ctx, logger)...)
	}

	return StitchResult{Candidates: candidates, Context: ctx, LastRow: j}
}

// cellScanner walks cells in document order. It remembers a bare "(" cell so
// that a negative split as "(" | "0.30" | ")" is recovered as -0.30.
type cellScanner struct {
	pendingNegative bool
}

func (s *cellScanner) scanRow(row Row, ctx Context, logger *zap.Logger) []Candidate {
	var out []Candidate
	for _, cell := range row.Cells {
		if isBareOpenParen(cell) {
			s.pendingNegative = true
			continue
		}
		if isBareCloseParen(cell) {
			s.pendingNegative = false
			continue
		}

		n, ok := ParseNumber(cell)
		if !ok {
			continue
		}

		value := n.Value
		if s.pendingNegative {
			if !strings.HasPrefix(value, "-") {
				value = "-" + value
			}
			s.pendingNegative = false
			logger.Debug("[EPS] split negative carried", zap.String("value", value))
		} else if n.OpenParen {
			logger.Debug("[EPS] unterminated parenthesis, value kept negative", zap.String("value", value))
		}

		out = append(out, Candidate{
			Value:   value,
			Basic:   ctx.Basic,
			Diluted: ctx.Diluted,
			GAAP:    ctx.GAAP,
		})
		logger.Debug("[EPS] found value", zap.String("value", value), zap.String("cell", cell))
	}
	return out
}

// classifyVariant collapses ErrUnclassifiable into the zero Variant.
func classifyVariant(text string, logger *zap.Logger) Variant {
	v, err := ClassifyVariant(text)
	if err != nil {
		logger.Debug("[EPS] variant classification failed", zap.Error(err))
	}
	return v
}
