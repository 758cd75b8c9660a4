package eps

import (
	"go.uber.org/zap"
)

// =============================================================================
// DOCUMENT AGGREGATOR - Every EPS-labeled row in every table
// =============================================================================

// Extractor scans documents for EPS occurrences. It holds no per-document
// state, so one Extractor may serve many goroutines.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables trace output.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract is NewExtractor(nil).Extract(doc).
func Extract(doc Document) []Occurrence {
	return NewExtractor(nil).Extract(doc)
}

// Extract returns one Occurrence per EPS-labeled row that yielded a value,
// in document order. Rows consumed by a stitch lookahead are still visited
// by the outer scan.
func (e *Extractor) Extract(doc Document) []Occurrence {
	var occurrences []Occurrence

	for tableIdx, table := range doc.Tables {
		for i, row := range table.Rows {
			text := row.LabelText()
			if !IsEPSLabel(text) {
				continue
			}
			e.logger.Debug("[EPS] found EPS pattern in row",
				zap.Int("table", tableIdx), zap.Int("row", i),
				zap.String("text", truncateRunes(text, maxRowTextLen)))

			res := stitch(table, i, e.logger)
			occ, ok := Select(res.Candidates, text, tableIdx)
			if !ok {
				e.logger.Debug("[EPS] label without value", zap.Int("table", tableIdx), zap.Int("row", i))
				continue
			}
			occurrences = append(occurrences, occ)
		}
	}

	e.logger.Debug("[EPS] extraction summary",
		zap.Int("tables", len(doc.Tables)), zap.Int("occurrences", len(occurrences)))
	return occurrences
}
