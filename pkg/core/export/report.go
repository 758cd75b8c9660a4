package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"eps_parser/pkg/core/batch"
)

// WriteMarkdown writes a human-readable summary table of the run.
func WriteMarkdown(w io.Writer, report *batch.Report) error {
	found, missing, failed := report.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "# EPS extraction report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", report.RunID)
	fmt.Fprintf(&b, "- Directory: `%s`\n", report.Dir)
	fmt.Fprintf(&b, "- Filings: %d found, %d without EPS, %d failed\n\n", found, missing, failed)

	b.WriteString("| Filename | EPS | Occurrences | Note |\n")
	b.WriteString("|---|---:|---:|---|\n")
	for _, r := range report.Results {
		note := ""
		switch {
		case r.Err != nil:
			note = "error: " + r.Err.Error()
		case r.Summed:
			note = "summed"
		case !r.Found:
			note = "no EPS row"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
			escapeCell(r.Filename), escapeCell(r.EPS), len(r.Occurrences), escapeCell(note))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteReport renders the Markdown summary to HTML with goldmark.
func WriteReport(w io.Writer, report *batch.Report) error {
	var src bytes.Buffer
	if err := WriteMarkdown(&src, report); err != nil {
		return err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
