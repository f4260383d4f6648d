// Package batch handles batch processing of a directory of VSS reports
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/vss-csv/cmd/root"
	vssbatch "fjacquet/vss-csv/internal/batch"
	"fjacquet/vss-csv/internal/container"
	"fjacquet/vss-csv/internal/fileutils"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/validation"

	"github.com/spf13/cobra"
)

// ErrFilesFailed is returned when at least one file of the run failed.
var ErrFilesFailed = errors.New("batch completed with failures")

var summaryFile string

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process VSS reports from a directory",
	Long: `Batch process every report file of an input directory and write the CSV
files of each one to the output directory.

Files are parsed concurrently (see batch.workers). A file that fails is
reported and does not stop the others.

Example:
  vss-csv batch -i reports/ -o out/ --summary out/summary.json`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&summaryFile, "summary", "", "Write a summary of the merged records to this file (.json, .yaml or .yml)")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, root.SharedFlags.Input, root.SharedFlags.Output, summaryFile, cmd.OutOrStdout())
}

// Run processes inputDir into outputDir and prints one line per file to out.
// When summaryPath is set, the summary of the merged records is written there
// in the encoding its extension selects, or the configured one.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir, summaryPath string, out io.Writer) error {
	if inputDir == "" || outputDir == "" {
		return errors.New("input and output directories must be specified")
	}
	if err := validation.IsValidInputDir(inputDir); err != nil {
		return err
	}
	if summaryPath != "" {
		if err := validation.IsValidOutputFormat(summaryFormat(c, summaryPath)); err != nil {
			return err
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.GetLogger().Info("Batch command called",
		logging.F(logging.FieldInputFile, inputDir),
		logging.F(logging.FieldOutputFile, outputDir))

	result, err := c.GetBatchRunner().Run(ctx, inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("error during batch conversion: %w", err)
	}

	printResult(out, result)

	if summaryPath != "" {
		if err := writeSummary(c, result, summaryPath); err != nil {
			return err
		}
	}

	if failed := len(result.Failed()); failed > 0 {
		return fmt.Errorf("%w: %d of %d files failed", ErrFilesFailed, failed, len(result.Files))
	}
	return nil
}

func printResult(out io.Writer, result *vssbatch.Result) {
	for _, f := range result.Files {
		name := filepath.Base(f.File)
		if f.Err != nil {
			_, _ = fmt.Fprintf(out, "FAIL  %s: %v\n", name, f.Err)
			continue
		}
		_, _ = fmt.Fprintf(out, "OK    %s  %d files  %s\n", name, len(f.Outputs), f.DateRange)
	}
	_, _ = fmt.Fprintf(out, "Batch %s: %d succeeded, %d failed, %d records\n",
		result.RunID, result.Succeeded(), len(result.Failed()), result.Merged.Total())
}

// summaryFormat is the extension of path, or the configured format when path
// has none.
func summaryFormat(c *container.Container, path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext[1:]
	}
	return c.GetConfig().Summary.Format
}

func writeSummary(c *container.Container, result *vssbatch.Result, path string) error {
	data, err := c.GetReportGenerator().GenerateReport(result.Summary(), summaryFormat(c, path))
	if err != nil {
		return fmt.Errorf("error generating summary: %w", err)
	}
	if err := fileutils.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	c.GetLogger().Info("Summary written", logging.F(logging.FieldOutputFile, path))
	return nil
}
