package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetgraph/pkg/core/rater"
)

// metricsCommand lists the fitness metrics with their configured weights.
func (c *CLI) metricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the fitness metrics and their weights",
		Long: `List the fitness metrics and their weights.

The rating of a partition is the weighted sum of all metrics. Component
metrics are summed over every component; partition metrics are computed
once. Weights come from the "weights" array of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return printMetrics(cmd.OutOrStdout(), cfg.Weights)
		},
	}
}

func printMetrics(w io.Writer, weights []float64) error {
	if len(weights) != rater.WeightCount() {
		return fmt.Errorf("%w: got %d, want %d", rater.ErrWeightCount, len(weights), rater.WeightCount())
	}
	component := len(rater.ComponentMetrics())
	metrics := rater.Metrics()
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		scope := "component"
		if i >= component {
			scope = "partition"
		}
		rows[i] = []string{
			strconv.Itoa(i),
			string(m),
			scope,
			strconv.FormatFloat(weights[i], 'g', -1, 64),
			m.Description(),
		}
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"#", "Metric", "Scope", "Weight", "Description"}, rows, 0, 3))
	return err
}
