// Package export writes batch results as CSV, XLSX, JSON or a rendered report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"eps_parser/pkg/core/batch"
	"eps_parser/pkg/core/config"
)

// Header is the column layout of the per-file summary.
var Header = []string{"filename", "eps"}

// WriteCSV writes one "filename,eps" line per filing. Absent EPS is an empty cell.
func WriteCSV(w io.Writer, results []batch.FileResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Filename, r.EPS}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonResult adds the error text, which FileResult leaves out of its JSON form.
type jsonResult struct {
	batch.FileResult
	Error string `json:"error,omitempty"`
}

// WriteJSON writes the full report, occurrences included.
func WriteJSON(w io.Writer, report *batch.Report) error {
	out := struct {
		*batch.Report
		Results []jsonResult `json:"results"`
	}{Report: report}
	for _, r := range report.Results {
		out.Results = append(out.Results, jsonResult{FileResult: r, Error: r.ErrorText()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// WriteAll writes every configured format to <dir>/<basename>.<ext> and
// returns the paths written.
func WriteAll(cfg config.OutputConfig, report *batch.Report) ([]string, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	for _, format := range cfg.Formats {
		path := filepath.Join(cfg.Dir, cfg.Basename+"."+format)

		var err error
		switch format {
		case config.FormatCSV:
			err = writeFile(path, func(w io.Writer) error { return WriteCSV(w, report.Results) })
		case config.FormatJSON:
			err = writeFile(path, func(w io.Writer) error { return WriteJSON(w, report) })
		case config.FormatMD:
			// Markdown source plus the goldmark-rendered HTML next to it
			err = writeFile(path, func(w io.Writer) error { return WriteMarkdown(w, report) })
			if err == nil {
				htmlPath := filepath.Join(cfg.Dir, cfg.Basename+".html")
				err = writeFile(htmlPath, func(w io.Writer) error { return WriteReport(w, report) })
				if err == nil {
					written = append(written, htmlPath)
				}
			}
		case config.FormatXLSX:
			err = WriteXLSX(path, report.Results)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return written, fmt.Errorf("export %s: %w", format, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
