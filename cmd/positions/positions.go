// Package positions shows and checks the field-position table
package positions

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/vss-csv/cmd/root"
	"fjacquet/vss-csv/internal/container"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/store"

	"github.com/spf13/cobra"
)

var (
	checkFile  string
	writeFile  string
	reportType string
)

// Cmd represents the positions command
var Cmd = &cobra.Command{
	Use:   "positions",
	Short: "Show or check the field-position table",
	Long: `Print the effective field-position table as YAML: the built-in layout
with the configured positions file merged over it.

--check validates a positions file without using it; --write saves the
effective table to a file that can be edited and passed back with
--positions.

Example:
  vss-csv positions
  vss-csv positions --type 110
  vss-csv positions --check my-positions.yaml
  vss-csv positions --write positions.yaml`,
	RunE: positionsFunc,
}

func init() {
	Cmd.Flags().StringVar(&checkFile, "check", "", "Validate a positions file and exit")
	Cmd.Flags().StringVar(&writeFile, "write", "", "Write the effective table to this file")
	Cmd.Flags().StringVar(&reportType, "type", "", "Show a single report type (110, 120, 130, 140, 900)")
}

func positionsFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	if checkFile != "" {
		return Check(c, checkFile, cmd.OutOrStdout())
	}
	if writeFile != "" {
		return Write(c, writeFile, cmd.OutOrStdout())
	}
	return Show(c, reportType, cmd.OutOrStdout())
}

// Show prints the effective table, or only the fields of reportType when it
// is set.
func Show(c *container.Container, reportType string, out io.Writer) error {
	table := c.GetPositions()
	if reportType != "" {
		rt, err := models.ParseReportType(reportType)
		if err != nil {
			return err
		}
		table = models.PositionTable{rt: table.Fields(rt)}
	}
	data, err := store.Marshal(table)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// Check loads file over the built-in layout and reports whether the result
// is usable.
func Check(c *container.Container, file string, out io.Writer) error {
	if _, err := store.NewPositionStore(file, c.GetLogger()).Load(); err != nil {
		return fmt.Errorf("invalid positions file %s: %w", file, err)
	}
	_, err := fmt.Fprintf(out, "%s: OK\n", file)
	return err
}

// Write saves the effective table to path.
func Write(c *container.Container, path string, out io.Writer) error {
	if err := c.GetStore().Save(path, c.GetPositions()); err != nil {
		return fmt.Errorf("error writing positions: %w", err)
	}
	_, err := fmt.Fprintf(out, "Positions written to %s\n", path)
	return err
}
