// Package batch provides concurrent processing of a directory of VSS report
// files, one goroutine per file up to a worker limit.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/vss-csv/internal/common"
	"fjacquet/vss-csv/internal/fileutils"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/report"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// DefaultExtensions is used when Options.Extensions is empty.
var DefaultExtensions = []string{".txt", ".TXT"}

// ErrNoRecords marks a file that parsed without producing any record.
var ErrNoRecords = errors.New("no records found")

// ErrOutputCollision is returned when two input files would write the same
// output files, such as X.txt and X.TXT.
var ErrOutputCollision = errors.New("input files share an output name")

// FileParser parses one report file.
type FileParser interface {
	ParseFile(ctx context.Context, path string) (models.ParseResult, error)
}

// Options configures a BatchRunner.
type Options struct {
	Workers    int
	Extensions []string
}

// FileResult is the outcome of one file.
type FileResult struct {
	File      string
	Outputs   []string
	Counts    map[models.ReportType]int
	DateRange DateRange
	Duration  time.Duration
	Err       error
}

// Result is the outcome of a batch run. Files keeps the input order.
type Result struct {
	RunID  string
	Files  []FileResult
	Merged models.ParseResult
}

// Failed returns the files that could not be processed.
func (r *Result) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Succeeded returns the number of files processed without error.
func (r *Result) Succeeded() int {
	return len(r.Files) - len(r.Failed())
}

// Summary totals the records of every successful file.
func (r *Result) Summary() *report.Summary {
	var files []string
	for _, f := range r.Files {
		if f.Err == nil {
			files = append(files, f.File)
		}
	}
	summary := report.Summarize(r.Merged, files...)
	summary.RunID = r.RunID
	return summary
}

// BatchRunner parses report files concurrently and writes one CSV per report
// type and file.
type BatchRunner struct {
	parser     FileParser
	writer     *common.Writer
	logger     logging.Logger
	workers    int
	extensions []string
	newRunID   func() string
}

// NewBatchRunner creates a BatchRunner. Zero options select the defaults.
func NewBatchRunner(parser FileParser, writer *common.Writer, logger logging.Logger, opts Options) *BatchRunner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if writer == nil {
		writer = common.NewWriter(common.DefaultDelimiter, "", logger)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &BatchRunner{
		parser:     parser,
		writer:     writer,
		logger:     logger,
		workers:    opts.Workers,
		extensions: opts.Extensions,
		newRunID:   uuid.NewString,
	}
}

// Workers returns the concurrency limit.
func (b *BatchRunner) Workers() int {
	return b.workers
}

// DiscoverFiles lists the regular files of dir whose extension is one of the
// configured extensions, sorted by name. Subdirectories are not descended.
// Files that differ only by extension are rejected since their CSV outputs
// would overwrite each other.
func (b *BatchRunner) DiscoverFiles(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtensions(dir, b.extensions)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}
	if err := checkOutputNames(files); err != nil {
		return nil, err
	}
	return files, nil
}

func checkOutputNames(files []string) error {
	seen := make(map[string]string, len(files))
	for _, file := range files {
		name := filepath.Base(file)
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if prev, ok := seen[stem]; ok {
			return fmt.Errorf("%w: %s and %s", ErrOutputCollision, filepath.Base(prev), name)
		}
		seen[stem] = file
	}
	return nil
}

// Run processes every matching file of inputDir into outputDir.
func (b *BatchRunner) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	files, err := b.DiscoverFiles(inputDir)
	if err != nil {
		return nil, err
	}
	return b.RunFiles(ctx, files, outputDir)
}

// RunFiles processes files into outputDir with at most Workers files in
// flight. A file that fails is recorded in its FileResult and does not stop
// the others; only cancellation of ctx aborts the run.
func (b *BatchRunner) RunFiles(ctx context.Context, files []string, outputDir string) (*Result, error) {
	runID := b.newRunID()
	logger := b.logger.WithField(logging.FieldBatchRunID, runID)
	logger.Info("Starting batch run",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldWorkers, b.workers),
		logging.F(logging.FieldOutputFile, outputDir))

	results := make([]FileResult, len(files))
	parsed := make([]models.ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], parsed[i] = b.processFile(gctx, logger, file, outputDir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := models.NewParseResult()
	for i := range files {
		if results[i].Err != nil {
			continue
		}
		for _, rt := range parsed[i].ReportTypes() {
			merged.Append(rt, parsed[i].Records(rt))
		}
	}

	result := &Result{RunID: runID, Files: results, Merged: merged}
	logger.Info("Batch run finished",
		logging.F(logging.FieldCount, result.Succeeded()),
		logging.F("failed", len(result.Failed())),
		logging.F(logging.FieldRecords, merged.Total()))
	return result, nil
}

func (b *BatchRunner) processFile(ctx context.Context, logger logging.Logger, file, outputDir string) (FileResult, models.ParseResult) {
	start := time.Now()
	fr := FileResult{File: file}
	fileLogger := logger.WithField(logging.FieldInputFile, file)

	result, err := b.parser.ParseFile(ctx, file)
	if err == nil && result.Total() == 0 {
		err = fmt.Errorf("%s: %w", file, ErrNoRecords)
	}
	if err == nil {
		fr.Outputs, err = b.writer.WriteResult(result, outputDir, file)
	}
	fr.Duration = time.Since(start)
	if err != nil {
		fr.Err = err
		fileLogger.WithError(err).Error("Failed to process file",
			logging.F(logging.FieldDuration, fr.Duration.Milliseconds()))
		return fr, nil
	}

	fr.Counts = result.Counts()
	fr.DateRange = ReportDateRange(result)
	fileLogger.Info("Processed file",
		logging.F(logging.FieldRecords, result.Total()),
		logging.F(logging.FieldDuration, fr.Duration.Milliseconds()))
	return fr, result
}
