package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/docx"
	"github.com/chehxing/docx-to-excel/internal/export"
	"github.com/chehxing/docx-to-excel/internal/fields"
)

type extractOptions struct {
	output   string
	fields   string
	config   string
	template string
	verbose  bool
}

// NewExtractCommand builds the field extraction mode.
func NewExtractCommand() *cobra.Command {
	var opts extractOptions
	cmd := &cobra.Command{
		Use:   "extract INPUT -o OUTPUT (-f a,b | -c fields.json)",
		Short: "Extract declared fields from a .docx into an Excel workbook",
		Example: `  docx2xlsx extract report.docx -o out.xlsx -c fields.json
  docx2xlsx extract report.docx -o out.xlsx -c fields.json -t template.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output workbook path (required)")
	f.StringVarP(&opts.fields, "fields", "f", "", "comma-separated field names")
	f.StringVarP(&opts.config, "config", "c", "", "field configuration file (JSON)")
	f.StringVarP(&opts.template, "template", "t", "", "workbook template with {field} placeholders")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print the loaded rules and the extracted values")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runExtract(cmd *cobra.Command, input string, opts extractOptions) error {
	e, err := setup(cmd, opts.verbose)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(input); err != nil {
		return common.DocumentReadError(input, err)
	}

	rules, err := fields.LoadRules(fields.Sources{ConfigPath: opts.config, Names: opts.fields}, e.logger)
	if err != nil {
		return err
	}
	if opts.verbose {
		printf(out, "Loaded %d field rules\n", len(rules))
	}

	doc, err := docx.Open(input)
	if err != nil {
		return err
	}

	engine := fields.NewEngine(e.logger, fields.WithPatternTimeout(e.cfg.Extract.RegexTimeout))
	result := engine.Extract(doc, rules)
	if opts.verbose {
		renderResult(out, result)
	}

	svc := export.NewService(e.logger)
	if opts.template != "" {
		err = svc.FillTemplate(result, opts.template, opts.output)
	} else {
		err = svc.WriteFields(result, opts.output)
	}
	if err != nil {
		return err
	}
	printf(out, "Saved %d fields to %s\n", result.Len(), opts.output)
	return nil
}
