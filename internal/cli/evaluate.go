package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetgraph/pkg/core/evaluate"
	"github.com/matzehuels/sheetgraph/pkg/errors"
	pkgio "github.com/matzehuels/sheetgraph/pkg/io"
)

// evaluateCommand creates the evaluate command.
func (c *CLI) evaluateCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "evaluate [sheet.json] [result.json]",
		Short: "Compare a detection result against ground-truth tables",
		Long: `Compare a detection result against the ground-truth tables of a sheet.

Each ground-truth table is counted as correct, partial, over-segmented,
under-segmented or missed. Detected tables that overlap no ground-truth
table are false positives. Area precision and recall are computed over
the cells covered by either side.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.OutOrStdout(), args[0], args[1], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func runEvaluate(stdout io.Writer, sheetPath, resultPath string, asJSON bool) error {
	s, err := pkgio.ImportJSON(sheetPath)
	if err != nil {
		return fmt.Errorf("load sheet %s: %w", sheetPath, err)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if len(s.Tables) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s has no ground-truth tables", sheetPath)
	}
	res, err := pkgio.ImportResultJSON(resultPath)
	if err != nil {
		return fmt.Errorf("load result %s: %w", resultPath, err)
	}

	report := evaluate.Evaluate(s.Tables, res.Boxes())
	if asJSON {
		return writeIndentedJSON(stdout, report)
	}
	printEvaluation(report)
	return nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
