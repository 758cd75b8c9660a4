// Package batch runs EPS extraction over a directory of filings.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eps_parser/pkg/core/edgar"
	"eps_parser/pkg/core/eps"
	"eps_parser/pkg/core/logging"
)

// =============================================================================
// BATCH RUNNER - One filing per worker, no state shared between filings
// =============================================================================

// FileResult is the outcome for one filing.
type FileResult struct {
	Filename    string           `json:"filename"`
	EPS         string           `json:"eps,omitempty"`
	Found       bool             `json:"found"`
	Summed      bool             `json:"summed,omitempty"`
	Occurrences []eps.Occurrence `json:"occurrences"`
	Err         error            `json:"-"`
}

// ErrorText returns the file's error text, or "".
func (r FileResult) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report is the outcome of one Run.
type Report struct {
	RunID     string       `json:"run_id"`
	Dir       string       `json:"dir"`
	StartedAt time.Time    `json:"started_at"`
	Duration  string       `json:"duration"`
	Results   []FileResult `json:"results"`
}

// Stats counts files by outcome.
func (r *Report) Stats() (found, missing, failed int) {
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			failed++
		case res.Found:
			found++
		default:
			missing++
		}
	}
	return found, missing, failed
}

// Runner processes every matching filing in a directory.
type Runner struct {
	Workers    int
	Extensions []string // Lowercase, with leading dot
	Logger     *zap.Logger
}

// NewRunner creates a runner. workers < 1 means one worker.
func NewRunner(workers int, extensions []string, logger *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{Workers: workers, Extensions: extensions, Logger: logging.OrNop(logger)}
}

// Run extracts and resolves EPS for every filing in dir (not recursive).
// A failing file is recorded on its FileResult and does not stop the run.
// Cancelling ctx stops dispatching new files and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, dir string) (*Report, error) {
	files, err := r.listFilings(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.New().String(),
		Dir:       dir,
		StartedAt: time.Now(),
		Results:   make([]FileResult, len(files)),
	}
	logger := logging.OrNop(r.Logger).With(zap.String("run_id", report.RunID))
	logger.Info("[Batch] starting", zap.String("dir", dir), zap.Int("files", len(files)), zap.Int("workers", r.Workers))

	extractor := eps.NewExtractor(logger)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < max(r.Workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// Each slot is written by exactly one worker
				report.Results[idx] = processFile(extractor, filepath.Join(dir, files[idx]), logger)
			}
		}()
	}

	var runErr error
dispatch:
	for i := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if runErr != nil {
		logger.Warn("[Batch] cancelled", zap.Error(runErr))
		return nil, runErr
	}

	report.Duration = time.Since(report.StartedAt).String()
	found, missing, failed := report.Stats()
	logger.Info("[Batch] SUMMARY",
		zap.Int("found", found), zap.Int("missing", missing), zap.Int("failed", failed),
		zap.String("duration", report.Duration))
	return report, nil
}

// listFilings returns matching regular files in dir, sorted by name.
func (r *Runner) listFilings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if r.matches(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range r.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func processFile(extractor *eps.Extractor, path string, logger *zap.Logger) FileResult {
	res := FileResult{Filename: filepath.Base(path)}

	doc, err := edgar.OpenFiling(path)
	if err != nil {
		logger.Warn("[Batch] filing failed", zap.String("file", res.Filename), zap.Error(err))
		res.Err = err
		return res
	}

	res.Occurrences = extractor.Extract(doc)
	resolution := eps.ResolveDetail(res.Occurrences)
	res.EPS, res.Found, res.Summed = resolution.Value, resolution.Found, resolution.Summed

	logger.Debug("[Batch] filing done",
		zap.String("file", res.Filename),
		zap.Int("occurrences", len(res.Occurrences)),
		zap.String("eps", res.EPS))
	return res
}

// ExtractFile is the single-filing call: parse, then extract occurrences.
func ExtractFile(path string, logger *zap.Logger) ([]eps.Occurrence, error) {
	doc, err := edgar.OpenFiling(path)
	if err != nil {
		return nil, err
	}
	return eps.NewExtractor(logger).Extract(doc), nil
}
