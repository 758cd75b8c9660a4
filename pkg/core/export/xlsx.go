package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"eps_parser/pkg/core/batch"
)

const (
	summarySheet     = "EPS"
	occurrencesSheet = "Occurrences"
)

var occurrenceHeader = []interface{}{
	"filename", "table_idx", "row_text", "basic", "diluted", "gaap", "value", "all_values",
}

// WriteXLSX saves a workbook with a per-file summary sheet and a sheet
// listing every occurrence behind each answer.
func WriteXLSX(path string, results []batch.FileResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(occurrencesSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetSheetRow(occurrencesSheet, "A1", &occurrenceHeader); err != nil {
		return err
	}

	occRow := 2
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{r.Filename, r.EPS}); err != nil {
			return err
		}

		for _, o := range r.Occurrences {
			cell, err := excelize.CoordinatesToCellName(1, occRow)
			if err != nil {
				return err
			}
			row := []interface{}{
				r.Filename, o.TableIdx, o.RowText, o.Basic, o.Diluted, o.GAAP, o.Value,
				strings.Join(o.AllValues, ";"),
			}
			if err := f.SetSheetRow(occurrencesSheet, cell, &row); err != nil {
				return err
			}
			occRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
