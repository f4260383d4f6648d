// Package parse handles conversion of a single VSS report file
package parse

import (
	"context"
	"errors"

	"fjacquet/vss-csv/cmd/common"
	"fjacquet/vss-csv/cmd/root"
	"fjacquet/vss-csv/internal/container"
	"fjacquet/vss-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert a VSS report file to CSV",
	Long: `Parse a fixed-width VSS settlement report and write one CSV file per
report type found, named <input base>_<REPORT TYPE>.csv.

Example:
  vss-csv parse -i VSS_2022048.txt -o out/`,
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	return Run(cmd.Context(), c, root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.Validate)
}

// Run converts inputFile into outputDir with the container's parser. An empty
// outputDir writes next to the current directory.
func Run(ctx context.Context, c *container.Container, inputFile, outputDir string, validate bool) error {
	if inputFile == "" {
		return errors.New("input file must be specified")
	}
	if err := validation.IsValidInputFile(inputFile); err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = "."
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return common.ProcessFileWithError(ctx, c.GetParser(), inputFile, outputDir, validate, c.GetLogger())
}
