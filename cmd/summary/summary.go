// Package summary prints per-report-type totals of a VSS report file
package summary

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/vss-csv/cmd/root"
	"fjacquet/vss-csv/internal/container"
	"fjacquet/vss-csv/internal/fileutils"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/report"
	"fjacquet/vss-csv/internal/validation"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the records of a VSS report file",
	Long: `Parse a VSS report file and print, per report type, the number of
records, the sum of their counts and the net amount per currency.

Example:
  vss-csv summary -i VSS_2022048.txt --format yaml
  vss-csv summary -i VSS_2022048.txt -o summary.json`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVar(&format, "format", "", "Output format: json or yaml (default from summary.format)")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, root.SharedFlags.Input, root.SharedFlags.Output, format, cmd.OutOrStdout())
}

// Run parses inputFile and writes its summary to outputFile, or to out when
// outputFile is empty. An empty format selects the configured one.
func Run(ctx context.Context, c *container.Container, inputFile, outputFile, format string, out io.Writer) error {
	if inputFile == "" {
		return errors.New("input file must be specified")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if format == "" {
		format = c.GetConfig().Summary.Format
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	if err := validation.IsValidInputFile(inputFile); err != nil {
		return err
	}

	result, err := c.GetParser().ParseFile(ctx, inputFile)
	if err != nil {
		return fmt.Errorf("error parsing file: %w", err)
	}

	data, err := c.GetReportGenerator().GenerateReport(report.Summarize(result, inputFile), format)
	if err != nil {
		return err
	}

	if outputFile == "" {
		_, err = out.Write(data)
		return err
	}
	if err := fileutils.WriteFile(outputFile, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	c.GetLogger().Info("Summary written", logging.F(logging.FieldOutputFile, outputFile))
	return nil
}
