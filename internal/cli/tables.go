package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/docx"
	"github.com/chehxing/docx-to-excel/internal/export"
)

type tablesOptions struct {
	output   string
	sheet    string
	preserve bool
	verbose  bool
}

// NewTablesCommand builds the table dump mode.
func NewTablesCommand() *cobra.Command {
	var opts tablesOptions
	cmd := &cobra.Command{
		Use:   "tables INPUT [-o output.xlsx]",
		Short: "Copy every table of a .docx into one Excel sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", constants.DefaultTablesOutput, "output workbook path")
	f.StringVarP(&opts.sheet, "sheet-name", "s", constants.SheetTables, "worksheet name")
	f.BoolVarP(&opts.preserve, "preserve-format", "f", false, "add borders, wrapping and shaded header rows")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print per-table dimensions")
	return cmd
}

func runTables(cmd *cobra.Command, input string, opts tablesOptions) error {
	e, err := setup(cmd, opts.verbose)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(input); err != nil {
		return common.DocumentReadError(input, err)
	}
	if !constants.IsDocumentExt(filepath.Ext(input)) {
		e.logger.Warn("input does not have a .docx extension", "path", input)
	}

	doc, err := docx.Open(input)
	if err != nil {
		return err
	}
	grids := doc.Grids()
	if opts.verbose {
		printf(out, "Found %d tables\n", len(grids))
		renderGridSizes(out, grids)
	}
	if len(grids) == 0 {
		e.logger.Warn("no tables found", "path", input)
	}

	svc := export.NewService(e.logger)
	if err := svc.WriteTables(grids, opts.output, export.TableOptions{SheetName: opts.sheet, Format: opts.preserve}); err != nil {
		return err
	}
	printf(out, "Saved %d tables to %s\n", len(grids), opts.output)
	return nil
}
