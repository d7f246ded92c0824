package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetgraph/pkg/core/evaluate"
	"github.com/matzehuels/sheetgraph/pkg/core/sheet"
	pkgio "github.com/matzehuels/sheetgraph/pkg/io"
	"github.com/matzehuels/sheetgraph/pkg/pipeline"
	"github.com/matzehuels/sheetgraph/pkg/xlsx"
)

// detectOpts holds the command-line flags for the detect command.
type detectOpts struct {
	strategy string // overrides the configured strategy
	workbook string // xlsx file to read column widths and row heights from
	sheet    string // worksheet name (defaults to the document's sheet name)
	output   string // result file
	json     bool   // print the result as JSON on stdout
	refresh  bool   // recompute even when cached
	noCache  bool   // neither read nor write the cache
}

// detectCommand creates the detect command.
func (c *CLI) detectCommand() *cobra.Command {
	var opts detectOpts

	cmd := &cobra.Command{
		Use:   "detect [sheet.json]",
		Short: "Detect the tables of a labelled sheet",
		Long: `Detect the tables of a labelled sheet.

The sheet document lists the header and data regions of one worksheet.
Sheetgraph connects aligned regions into a graph and searches for the
partition into connected components that rates best. Each component is a
detected table.

Column widths and row heights come from the document's "dimensions"
object, or from the source workbook when --xlsx is given.

If the document carries ground-truth tables, the result is evaluated
against them.

Examples:
  sheetgraph detect sheet.json
  sheetgraph detect sheet.json --strategy genetic -o result.json
  sheetgraph detect sheet.json --xlsx book.xlsx --sheet Summary
  sheetgraph detect sheet.json --json | jq .tables

With --json and -o together, the result is written to both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDetect(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "search strategy: auto, exhaustive, genetic (default from config)")
	cmd.Flags().StringVar(&opts.workbook, "xlsx", "", "read column widths and row heights from this workbook")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet in --xlsx (default: the document's sheet name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to this file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runDetect loads the sheet, runs the pipeline and reports the result.
func (c *CLI) runDetect(ctx context.Context, stdout io.Writer, input string, opts detectOpts) error {
	logger := loggerFromContext(ctx)

	s, err := pkgio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load sheet %s: %w", input, err)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Strategy: opts.strategy,
		Config:   cfg,
		Refresh:  opts.refresh,
		Logger:   logger,
	}
	if opts.workbook != "" {
		dims, err := workbookDimensions(opts.workbook, opts.sheet, s)
		if err != nil {
			return err
		}
		if dims != nil {
			popts.Dimensions = dims
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Detecting tables...")
	reporter := newSearchReporter(logger, spinner, cfg.Genetic.Generations)
	popts.Progress = reporter.onGeneration
	spinner.Start()

	prog := newProgress(logger)
	res, err := runner.Detect(ctx, s, popts)
	if err != nil {
		spinner.StopWithError("Detection failed")
		return fmt.Errorf("detect: %w", err)
	}
	spinner.Stop()
	reporter.finish(res.Stats.History)
	prog.done("detection complete", "tables", len(res.Tables), "cached", res.Stats.CacheHit)

	if opts.output != "" {
		if err := pkgio.ExportJSON(opts.output, res.Result); err != nil {
			return err
		}
	}
	if opts.json {
		return pkgio.WriteJSON(stdout, res.Result)
	}
	printDetection(input, res, opts.output)
	return nil
}

// workbookDimensions reads the sizes of the document's rows and columns
// from the workbook. It returns nil when the document has no regions.
func workbookDimensions(path, name string, s *pkgio.Sheet) (*sheet.Static, error) {
	bounds, ok := s.Bounds()
	if !ok {
		return nil, nil
	}
	if name == "" {
		name = s.Name
	}
	if name == "" {
		return nil, fmt.Errorf("--sheet is required: %s does not name its worksheet", path)
	}

	wb, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.Dimensions(name, bounds)
}

func printDetection(input string, res *pipeline.Result, output string) {
	name := res.Sheet
	if name == "" {
		name = input
	}
	if len(res.Tables) == 0 {
		printWarning("No tables detected in %s", name)
		return
	}

	printSuccess("Detected %s tables in %s", StyleNumber.Render(strconv.Itoa(len(res.Tables))), name)
	printStats(res.NodeCount, res.EdgeCount, res.Strategy, res.Stats.CacheHit)
	printDetail("score %.4f · toggles %s", res.Score, orDash(res.Toggles))

	rows := make([][]string, len(res.Tables))
	for i, t := range res.Tables {
		rng, err := xlsx.RangeName(t.BoundingBox)
		if err != nil {
			rng = t.BoundingBox.String()
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			rng,
			strconv.Itoa(t.Height()),
			strconv.Itoa(t.Width()),
			strconv.Itoa(t.Headers),
			formatInts(t.Regions),
		}
	}
	fmt.Println(renderTable([]string{"#", "Range", "Rows", "Cols", "Headers", "Regions"}, rows, 0, 2, 3, 4))

	if res.Evaluation != nil {
		printNewline()
		printEvaluation(*res.Evaluation)
	}

	if output != "" {
		printNewline()
		printSuccess("Result written")
		printFile(output)
		if res.Evaluation == nil {
			printNextStep("Compare with ground truth", fmt.Sprintf("sheetgraph evaluate %s %s", input, output))
		}
	}
}

// printEvaluation prints the detection categories and area scores.
func printEvaluation(r evaluate.Report) {
	fmt.Println(StyleTitle.Render("Evaluation"))
	d := r.Detection
	printKeyValue("correct", strconv.Itoa(d.Correct))
	printKeyValue("partial", strconv.Itoa(d.Partial))
	printKeyValue("over-seg.", strconv.Itoa(d.OverSegmented))
	printKeyValue("under-seg.", strconv.Itoa(d.UnderSegmented))
	printKeyValue("missed", strconv.Itoa(d.Missed))
	printKeyValue("false pos.", strconv.Itoa(d.FalsePositives))
	printKeyValue("precision", fmt.Sprintf("%.3f", r.Area.Precision))
	printKeyValue("recall", fmt.Sprintf("%.3f", r.Area.Recall))
}

func printNewline() {
	fmt.Println()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
