package cli

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/export"
	"github.com/chehxing/docx-to-excel/internal/ingest"
	"github.com/chehxing/docx-to-excel/internal/inspect"
	"github.com/chehxing/docx-to-excel/internal/repository"
)

const catalogPingTimeout = 2 * time.Second

type batchOptions struct {
	input   string
	output  string
	merge   bool
	noMerge bool
	pattern string
	catalog string
	verbose bool
}

// NewBatchCommand builds the directory inspection mode.
func NewBatchCommand() *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:   "batch -i DIR [-o batch_output.xlsx]",
		Short: "Summarise every .docx of a directory into Excel",
		Long: `batch inspects each document matching --pattern under --input-dir and writes
a consolidated workbook (Document Info, Table Summary, Statistics), or with
--no-merge one workbook per document under individual_excels/ next to --output.
Patterns use doublestar syntax, so "**/*.docx" recurses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input-dir", "i", "", "directory to scan (required)")
	f.StringVarP(&opts.output, "output", "o", constants.DefaultBatchOutput, "consolidated workbook path")
	f.BoolVarP(&opts.merge, "merge", "m", true, "write one consolidated workbook")
	f.BoolVar(&opts.noMerge, "no-merge", false, "write one workbook per document instead")
	f.StringVarP(&opts.pattern, "pattern", "p", constants.DefaultPattern, "file glob relative to the input directory")
	f.StringVar(&opts.catalog, "catalog", "", "sqlite catalog that records every inspection (default $DOCX2XLSX_CATALOG)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print per-document progress")
	_ = cmd.MarkFlagRequired("input-dir")
	return cmd
}

func runBatch(cmd *cobra.Command, opts batchOptions) error {
	e, err := setup(cmd, opts.verbose)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.catalog == "" {
		opts.catalog = e.cfg.Batch.CatalogPath
	}

	var catalog repository.InspectionRepository
	if opts.catalog != "" {
		db, err := openCatalog(e, opts.catalog)
		if err != nil {
			return err
		}
		defer repository.Close(db, e.logger)
		catalog = repository.NewInspectionRepository(db, e.logger)
	}

	if opts.verbose {
		printf(out, "Scanning %s for %s\n", opts.input, opts.pattern)
	}
	inspector := ingest.NewFSInspector(catalog, e.cfg.Batch.PreviewRunes, e.logger)
	results, stats, err := inspector.InspectDirectory(e.ctx, opts.input, opts.pattern)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no documents matching %s/%s", opts.input, opts.pattern)
	}

	docs := make([]inspect.DocumentInfo, 0, len(results))
	var tables []inspect.TableSummary
	for _, r := range results {
		docs = append(docs, r.Info)
		tables = append(tables, r.Tables...)
	}
	if opts.verbose {
		renderInspections(out, results)
	}

	svc := export.NewService(e.logger)
	if opts.merge && !opts.noMerge {
		if err := svc.WriteSummary(docs, tables, opts.output); err != nil {
			return err
		}
		printf(out, "Processed %d documents, found %d tables, saved to %s\n", len(docs), len(tables), opts.output)
	} else {
		dir := filepath.Join(filepath.Dir(opts.output), constants.IndividualDir)
		n, err := svc.WriteIndividual(docs, dir)
		if err != nil {
			return err
		}
		printf(out, "Processed %d documents, wrote %d workbooks to %s\n", len(docs), n, dir)
	}

	e.logger.Info("batch.ok",
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated,
		"tables", stats.Tables,
	)
	return nil
}

func openCatalog(e *env, path string) (*sql.DB, error) {
	db, err := repository.Open(e.ctx, repository.Config{Path: path}, e.logger)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	if err := repository.HealthCheck(e.ctx, db, catalogPingTimeout, e.logger); err != nil {
		repository.Close(db, e.logger)
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return db, nil
}
