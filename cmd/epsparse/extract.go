package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"eps_parser/pkg/core/batch"
	"eps_parser/pkg/core/eps"
)

var asJSON bool

type extractOutput struct {
	File        string           `json:"file"`
	EPS         string           `json:"eps,omitempty"`
	Found       bool             `json:"found"`
	Summed      bool             `json:"summed,omitempty"`
	Occurrences []eps.Occurrence `json:"occurrences"`
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Print every EPS occurrence of one filing and the resolved value",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	occs, err := batch.ExtractFile(args[0], logger)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if occs == nil {
		occs = []eps.Occurrence{}
	}
	res := eps.ResolveDetail(occs)

	out := extractOutput{
		File:        filepath.Base(args[0]),
		EPS:         res.Value,
		Found:       res.Found,
		Summed:      res.Summed,
		Occurrences: occs,
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printText(cmd.OutOrStdout(), out)
}

func printText(w io.Writer, out extractOutput) error {
	for _, o := range out.Occurrences {
		kind := "other"
		switch {
		case o.Basic && o.Diluted:
			kind = "basic+diluted"
		case o.Basic:
			kind = "basic"
		case o.Diluted:
			kind = "diluted"
		}
		gaap := "GAAP"
		if !o.GAAP {
			gaap = "non-GAAP"
		}
		fmt.Fprintf(w, "table %d  %-13s %-8s %8s  %s\n", o.TableIdx, kind, gaap, o.Value, o.RowText)
	}

	if !out.Found {
		_, err := fmt.Fprintf(w, "%s: EPS not found\n", out.File)
		return err
	}
	note := ""
	if out.Summed {
		note = " (summed)"
	}
	_, err := fmt.Fprintf(w, "%s: EPS %s%s\n", out.File, out.EPS, note)
	return err
}
