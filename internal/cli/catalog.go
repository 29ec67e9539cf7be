package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/repository"
	"github.com/chehxing/docx-to-excel/internal/utils"
)

type catalogOptions struct {
	catalog string
	limit   int
	since   string
	verbose bool
}

// NewCatalogCommand lists recorded inspections.
func NewCatalogCommand() *cobra.Command {
	var opts catalogOptions
	cmd := &cobra.Command{
		Use:   "catalog [--catalog db] [-n 50] [--since YYYY-MM-DD]",
		Short: "List the inspections recorded by batch --catalog, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.catalog, "catalog", "", "sqlite catalog path (default $DOCX2XLSX_CATALOG)")
	f.IntVarP(&opts.limit, "limit", "n", 50, "maximum rows, 0 for all")
	f.StringVar(&opts.since, "since", "", "only inspections on or after this date")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func runCatalog(cmd *cobra.Command, opts catalogOptions) error {
	e, err := setup(cmd, opts.verbose)
	if err != nil {
		return err
	}
	if opts.catalog == "" {
		opts.catalog = e.cfg.Batch.CatalogPath
	}
	if opts.catalog == "" {
		return common.ConfigurationErrorf("--catalog or %s_CATALOG is required", common.EnvPrefix)
	}
	if opts.limit < 0 {
		return common.ConfigurationErrorf("--limit must not be negative, got %d", opts.limit)
	}
	var since *time.Time
	if opts.since != "" {
		t, err := utils.ParseYMD(opts.since)
		if err != nil {
			return common.ConfigurationError("invalid --since date, use YYYY-MM-DD", err)
		}
		since = &t
	}

	db, err := openCatalog(e, opts.catalog)
	if err != nil {
		return err
	}
	defer repository.Close(db, e.logger)

	rows, err := repository.NewInspectionRepository(db, e.logger).List(e.ctx, since, opts.limit)
	if err != nil {
		return err
	}
	renderCatalog(cmd.OutOrStdout(), rows)
	return nil
}
