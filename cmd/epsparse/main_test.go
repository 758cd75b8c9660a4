package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const filingHTML = `<html><body><table>
<tr><td>Basic earnings per share</td><td>$</td><td>3.40</td></tr>
<tr><td>Diluted earnings per share</td><td>$</td><td>3.35</td></tr>
</table></body></html>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFiling(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(filingHTML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractCommand_Text(t *testing.T) {
	path := writeFiling(t, t.TempDir(), "acme.html")

	out, err := execute(t, "extract", path)
	if err != nil {
		t.Fatalf("extract failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "acme.html: EPS 3.40") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Count(out, "table 0") != 2 {
		t.Errorf("expected two occurrence lines:\n%s", out)
	}
}

func TestExtractCommand_JSON(t *testing.T) {
	path := writeFiling(t, t.TempDir(), "acme.html")

	out, err := execute(t, "extract", "--json", path)
	if err != nil {
		t.Fatalf("extract failed: %v\n%s", err, out)
	}

	var got extractOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !got.Found || got.EPS != "3.40" || len(got.Occurrences) != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestExtractCommand_MissingFile(t *testing.T) {
	if _, err := execute(t, "extract", filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestBatchCommand(t *testing.T) {
	in := t.TempDir()
	writeFiling(t, in, "a.html")
	writeFiling(t, in, "b.html")
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "batch", in, "--output", outDir, "--format", "csv,json", "--workers", "2")
	if err != nil {
		t.Fatalf("batch failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 filings: 2 with EPS") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "eps_results.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "filename,eps\na.html,3.40\nb.html,3.40\n"
	if string(data) != want {
		t.Errorf("csv =\n%s\nwant\n%s", data, want)
	}
	if _, err := os.Stat(filepath.Join(outDir, "eps_results.json")); err != nil {
		t.Errorf("json export missing: %v", err)
	}
}

func TestBatchCommand_InvalidFlags(t *testing.T) {
	in := t.TempDir()

	if _, err := execute(t, "batch", in, "--format", "pdf"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if _, err := execute(t, "batch", in, "--workers", "0"); err == nil {
		t.Error("Expected error for zero workers")
	}
}

func TestBatchCommand_StoreNeedsURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	in := t.TempDir()
	outDir := t.TempDir()

	_, err := execute(t, "batch", in, "--output", outDir, "--store")
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("Expected DATABASE_URL error, got %v", err)
	}
}
