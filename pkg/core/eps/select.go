package eps

// Select picks the representative candidate for one label occurrence:
// the first basic candidate, else the first diluted one, else the first seen.
// Returns false when there are no candidates.
func Select(candidates []Candidate, rowText string, tableIdx int) (Occurrence, bool) {
	if len(candidates) == 0 {
		return Occurrence{}, false
	}

	chosen := candidates[0]
	if c, ok := firstMatching(candidates, func(c Candidate) bool { return c.Basic }); ok {
		chosen = c
	} else if c, ok := firstMatching(candidates, func(c Candidate) bool { return c.Diluted }); ok {
		chosen = c
	}

	all := make([]string, len(candidates))
	for i, c := range candidates {
		all[i] = c.Value
	}

	return Occurrence{
		TableIdx:  tableIdx,
		RowText:   truncateRunes(rowText, maxRowTextLen),
		Basic:     chosen.Basic,
		Diluted:   chosen.Diluted,
		GAAP:      chosen.GAAP,
		Value:     chosen.Value,
		AllValues: all,
	}, true
}

func firstMatching(candidates []Candidate, pred func(Candidate) bool) (Candidate, bool) {
	for _, c := range candidates {
		if pred(c) {
			return c, true
		}
	}
	return Candidate{}, false
}
