package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"eps_parser/pkg/core/batch"
	"eps_parser/pkg/core/config"
	"eps_parser/pkg/core/eps"
)

func sampleReport() *batch.Report {
	return &batch.Report{
		RunID:     "run-1",
		Dir:       "filings",
		StartedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Results: []batch.FileResult{
			{
				Filename: "a.html",
				EPS:      "2.10",
				Found:    true,
				Occurrences: []eps.Occurrence{
					{TableIdx: 3, RowText: "basic earnings per share", Basic: true, GAAP: true, Value: "2.10", AllValues: []string{"2.10", "1.80"}},
				},
			},
			{Filename: "b.html"},
			{Filename: "c|d.html", Err: errors.New("failed to parse HTML")},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport().Results); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "filename,eps\na.html,2.10\nb.html,\nc|d.html,\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded struct {
		RunID   string `json:"run_id"`
		Results []struct {
			Filename    string           `json:"filename"`
			EPS         string           `json:"eps"`
			Error       string           `json:"error"`
			Occurrences []eps.Occurrence `json:"occurrences"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Results) != 3 {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
	if decoded.Results[0].Occurrences[0].TableIdx != 3 {
		t.Errorf("occurrence lost: %+v", decoded.Results[0])
	}
	if decoded.Results[2].Error != "failed to parse HTML" {
		t.Errorf("error text = %q", decoded.Results[2].Error)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eps.xlsx")
	if err := WriteXLSX(path, sampleReport().Results); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 summary rows, got %d: %v", len(rows), rows)
	}
	if rows[1][0] != "a.html" || rows[1][1] != "2.10" {
		t.Errorf("summary row = %v", rows[1])
	}

	occRows, err := f.GetRows(occurrencesSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(occRows) != 2 {
		t.Fatalf("expected header + 1 occurrence, got %v", occRows)
	}
	if occRows[1][7] != "2.10;1.80" {
		t.Errorf("all_values cell = %q", occRows[1][7])
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{"<h1>EPS extraction report</h1>", "<table>", "a.html", "no EPS row", "c|d.html"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q:\n%s", want, html)
		}
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := config.OutputConfig{
		Dir:      dir,
		Basename: "eps_results",
		Formats:  []string{config.FormatCSV, config.FormatJSON, config.FormatMD, config.FormatXLSX},
	}

	written, err := WriteAll(cfg, sampleReport())
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	for _, name := range []string{"eps_results.csv", "eps_results.json", "eps_results.md", "eps_results.html", "eps_results.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if len(written) != 5 {
		t.Errorf("written = %v, want 5 paths", written)
	}
}
