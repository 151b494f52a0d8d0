// Package runner orchestrates batch processing of runbook documents:
// file discovery, reading, parse, validate, and report assembly. Each
// document is fully owned by its own task, so documents are processed
// in parallel with no shared mutable state.
package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ethpandaops/runbook-lint/pkg/observability"
	"github.com/ethpandaops/runbook-lint/pkg/parser"
	"github.com/ethpandaops/runbook-lint/pkg/report"
	"github.com/ethpandaops/runbook-lint/pkg/validator"
)

// Runner processes batches of runbook files.
type Runner struct {
	log        logrus.FieldLogger
	validator  *validator.Validator
	extensions []string
	workers    int
}

// Option configures a Runner.
type Option func(*Runner)

// WithExtensions sets the file extensions treated as runbooks.
func WithExtensions(exts []string) Option {
	return func(r *Runner) {
		if len(exts) > 0 {
			r.extensions = exts
		}
	}
}

// WithWorkers sets the number of documents processed concurrently.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// New creates a runner validating with the given rule set.
func New(log logrus.FieldLogger, rules validator.RuleSet, opts ...Option) *Runner {
	r := &Runner{
		log:        log.WithField("component", "runner"),
		validator:  validator.New(rules),
		extensions: []string{".md"},
		workers:    8,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run discovers runbook files under the given paths and processes each
// one independently. A parse or I/O failure on one document is recorded
// in its report entry and never aborts the batch. The returned report
// lists documents in sorted path order.
func (r *Runner) Run(ctx context.Context, paths []string) (report.Report, error) {
	runID := observability.GenerateRunID()
	ctx = observability.WithRunID(ctx, runID)
	log := observability.RunScopedLogger(r.log, ctx)

	files, ioFailures := r.discover(paths)

	log.WithFields(logrus.Fields{
		"files": len(files),
		"paths": len(paths),
	}).Debug("Discovered runbook files")

	docs := make([]report.DocumentReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			docs[i] = r.processFile(ctx, path)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report.Report{}, fmt.Errorf("processing batch: %w", err)
	}

	docs = append(docs, ioFailures...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })

	rep := report.New(runID, docs)

	log.WithFields(logrus.Fields{
		"documents":    rep.Summary.Documents,
		"passed":       rep.Summary.Passed,
		"violations":   rep.Summary.Violations,
		"parse_errors": rep.Summary.ParseErrors,
		"io_errors":    rep.Summary.IOErrors,
	}).Info("Batch run complete")

	return rep, nil
}

// processFile runs the parse/validate pipeline for one file.
func (r *Runner) processFile(ctx context.Context, path string) report.DocumentReport {
	log := observability.RunScopedLogger(r.log, ctx).WithField("path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("Failed to read runbook")

		return report.DocumentReport{
			Path:   path,
			Status: report.StatusIOError,
			Error:  err.Error(),
		}
	}

	doc, err := parser.Parse(string(data))
	if err != nil {
		log.WithError(err).Warn("Failed to parse runbook")

		return report.DocumentReport{
			Path:   path,
			Status: report.StatusParseError,
			Error:  err.Error(),
		}
	}

	doc.FilePath = path
	result := r.validator.Validate(doc)

	log.WithField("violations", len(result.Violations)).Debug("Validated runbook")

	return report.FromResult(path, result)
}

// discover expands the given paths into a sorted list of runbook files.
// A directory contributes every matching file beneath it; a file path
// is taken as-is. Paths that cannot be read become io_error entries so
// the rest of the batch still runs.
func (r *Runner) discover(paths []string) (files []string, failures []report.DocumentReport) {
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			failures = append(failures, report.DocumentReport{
				Path:   path,
				Status: report.StatusIOError,
				Error:  err.Error(),
			})

			continue
		}

		if !info.IsDir() {
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				files = append(files, path)
			}

			continue
		}

		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() || !r.matchesExtension(p) {
				return nil
			}

			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				files = append(files, p)
			}

			return nil
		})
		if walkErr != nil {
			failures = append(failures, report.DocumentReport{
				Path:   path,
				Status: report.StatusIOError,
				Error:  walkErr.Error(),
			})
		}
	}

	sort.Strings(files)

	return files, failures
}

func (r *Runner) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, want := range r.extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}

	return false
}
