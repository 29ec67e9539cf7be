// Package cli wires the extraction engine, the table dump and the batch
// inspector to cobra commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chehxing/docx-to-excel/internal/common"
)

// Version information, set at link time by the binaries.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// env is what every command needs once flags are parsed.
type env struct {
	cfg    *common.Config
	logger *slog.Logger
	ctx    context.Context
}

// setup loads the environment configuration and builds the run logger.
// Diagnostics go to the command's stderr so stdout stays for reports.
func setup(cmd *cobra.Command, verbose bool) (*env, error) {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := common.NewLogger(cmd.ErrOrStderr(), cfg.Log, verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, logger = common.NewRun(ctx, logger)
	logger.Debug("run started", "command", cmd.Name(), "version", Version)
	return &env{cfg: cfg, logger: logger, ctx: ctx}, nil
}

// NewRootCommand builds docx2xlsx with every mode as a subcommand.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "docx2xlsx",
		Short: "Extract fields, tables and summaries from Word documents into Excel workbooks",
		Long: `docx2xlsx reads .docx documents and writes .xlsx workbooks.

Modes:
  extract  resolve declared fields (heading, table cell or regex) into a two-column sheet or a template
  tables   dump every table of one document into a single sheet
  batch    summarise every document of a directory
  catalog  list the inspections recorded by batch --catalog`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		NewExtractCommand(),
		NewTablesCommand(),
		NewBatchCommand(),
		NewCatalogCommand(),
	)
	return root
}

// Execute runs cmd and maps any error to exit code 1.
func Execute(cmd *cobra.Command) int {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// Main is the body of every binary.
func Main(cmd *cobra.Command) {
	os.Exit(Execute(cmd))
}
