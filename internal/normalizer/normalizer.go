// Package normalizer runs one pass of the question pipeline: collect,
// deduplicate, normalize, partition, report and publish.
package normalizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/quizbank/internal/platform/config"
	"github.com/p-n-ai/quizbank/internal/question"
)

// Result describes what a run produced.
type Result struct {
	// Records holds the deduplicated records as written to the combined file.
	Records       []question.Record
	Report        question.Report
	CombinedPath  string
	CategoryPaths []string
}

// Normalizer runs the pipeline described by its configuration.
type Normalizer struct {
	cfg   *config.Config
	out   io.Writer
	store question.Store
	cache redis.Cmdable
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithOutput sets where the console summary is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(n *Normalizer) { n.out = w }
}

// WithStore publishes normalized records to s after each run.
func WithStore(s question.Store) Option {
	return func(n *Normalizer) { n.store = s }
}

// WithCache publishes the run report to c after each run.
func WithCache(c redis.Cmdable) Option {
	return func(n *Normalizer) { n.cache = c }
}

// New creates a Normalizer for cfg.
func New(cfg *config.Config, opts ...Option) *Normalizer {
	n := &Normalizer{cfg: cfg, out: os.Stdout}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Run executes the configured mode and then the enabled sinks.
func (n *Normalizer) Run(ctx context.Context) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch n.cfg.Mode {
	case config.ModeDirectory:
		res, err = n.runDirectory()
	case config.ModeFlat:
		res, err = n.runFlat()
	default:
		return nil, fmt.Errorf("unknown mode %q", n.cfg.Mode)
	}
	if err != nil {
		return nil, err
	}

	if err := n.publish(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// runDirectory merges every category file of the source directory into one
// combined file. Records are written as read; missing fields are reported
// but not defaulted.
func (n *Normalizer) runDirectory() (*Result, error) {
	dc := n.cfg.Directory

	records, err := question.LoadDirectory(dc.SourceDir, dc.CombinedFile)
	if err != nil {
		return nil, err
	}
	unique := question.Deduplicate(records, n.dedupeOptions())
	slog.Info("questions collected", "mode", config.ModeDirectory, "read", len(records), "unique", len(unique))

	combined := filepath.Join(dc.SourceDir, dc.CombinedFile)
	if err := question.WriteJSON(combined, question.RawRecords(unique)); err != nil {
		return nil, fmt.Errorf("writing combined file: %w", err)
	}

	rep := question.BuildReport(unique, question.Inspect(unique))
	if err := rep.WriteText(n.out); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	return &Result{
		Records:      unique,
		Report:       rep,
		CombinedPath: combined,
	}, nil
}

// runFlat splits the single nested input into a cleaned combined file and
// one file per category.
func (n *Normalizer) runFlat() (*Result, error) {
	fc := n.cfg.Flat

	records, err := question.LoadFlat(fc.InputFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", fc.InputFile, err)
	}
	unique := question.Deduplicate(records, n.dedupeOptions())
	cleaned, issues := question.Normalize(unique)
	slog.Info("questions collected", "mode", config.ModeFlat, "read", len(records), "unique", len(unique), "defaulted", len(issues))

	if err := question.WriteJSON(fc.CleanedFile, cleaned); err != nil {
		return nil, fmt.Errorf("writing cleaned file: %w", err)
	}

	rep := question.BuildReport(cleaned, issues)
	if err := rep.WriteText(n.out); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	res := &Result{
		Records:      cleaned,
		Report:       rep,
		CombinedPath: fc.CleanedFile,
	}

	parts := question.PartitionByCategory(cleaned)
	paths, err := question.WritePartitions(fc.OutputDir, parts)
	for i, path := range paths {
		fmt.Fprintf(n.out, "Saved %d questions to %s\n", len(parts[i].Records), path)
	}
	res.CategoryPaths = paths
	if err != nil {
		return nil, err
	}

	return res, nil
}

// publish runs the optional sinks: review workbook, store and cache.
func (n *Normalizer) publish(ctx context.Context, res *Result) error {
	if path := n.cfg.Review.Path; path != "" {
		if err := question.WriteReview(path, res.Records, res.Report); err != nil {
			return fmt.Errorf("writing review workbook: %w", err)
		}
		slog.Info("review workbook written", "path", path)
	}

	if n.store != nil {
		cleaned, _ := question.Normalize(res.Records)
		saved, err := n.store.SaveQuestions(ctx, cleaned)
		if err != nil {
			return fmt.Errorf("saving questions: %w", err)
		}
		slog.Info("questions saved", "count", saved)
	}

	if n.cache != nil {
		if err := question.PublishReport(ctx, n.cache, n.cfg.Cache.Prefix, res.Report); err != nil {
			return err
		}
		slog.Info("report published", "prefix", n.cfg.Cache.Prefix)
	}

	return nil
}

func (n *Normalizer) dedupeOptions() question.DedupeOptions {
	return question.DedupeOptions{NFCKeys: n.cfg.Dedupe.NFCKeys}
}
