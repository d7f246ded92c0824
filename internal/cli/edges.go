package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	pkgio "github.com/matzehuels/sheetgraph/pkg/io"
)

// edgesCommand creates the edges command for inspecting the sheet graph.
func (c *CLI) edgesCommand() *cobra.Command {
	var resultPath string

	cmd := &cobra.Command{
		Use:   "edges [sheet.json]",
		Short: "Print the sheet graph of a labelled sheet",
		Long: `Print the sheet graph of a labelled sheet.

Every edge connects two aligned regions. Edges are listed in toggle order,
so the n-th character of a result's toggle string belongs to the n-th
edge. With --result, the edges enabled by that result are marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdges(cmd.Context(), cmd.OutOrStdout(), args[0], resultPath)
		},
	}

	cmd.Flags().StringVarP(&resultPath, "result", "r", "", "mark the edges enabled by this detection result")

	return cmd
}

func runEdges(ctx context.Context, stdout io.Writer, input, resultPath string) error {
	s, err := pkgio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load sheet %s: %w", input, err)
	}
	g, err := graph.New(s.Regions(), s.Dimensions())
	if err != nil {
		return fmt.Errorf("build sheet graph: %w", err)
	}
	loggerFromContext(ctx).Debug("built sheet graph", "regions", len(g.Nodes()), "edges", g.EdgeCount())

	headers := []string{"#", "Source", "Destination", "Alignment", "Connection", "Shared", "Length"}
	var toggles []bool
	if resultPath != "" {
		res, err := pkgio.ImportResultJSON(resultPath)
		if err != nil {
			return fmt.Errorf("load result %s: %w", resultPath, err)
		}
		if toggles, err = graph.ParseToggles(res.Toggles); err != nil {
			return fmt.Errorf("result %s: %w", resultPath, err)
		}
		if err := g.SetToggles(toggles); err != nil {
			return fmt.Errorf("result %s does not belong to %s: %w", resultPath, input, err)
		}
		headers = append(headers, "On")
	}

	rows := make([][]string, g.EdgeCount())
	for i, e := range g.Edges() {
		rows[i] = []string{
			strconv.Itoa(i),
			e.Source.String(),
			e.Destination.String(),
			e.Alignment.String(),
			e.Connection.String(),
			formatSpans(e.Aligned),
			strconv.Itoa(e.Length),
		}
		if toggles != nil {
			on := ""
			if toggles[i] {
				on = iconSuccess
			}
			rows[i] = append(rows[i], on)
		}
	}

	fmt.Fprintf(stdout, "%s %d regions, %d edges\n", StyleTitle.Render(s.Name), len(g.Nodes()), g.EdgeCount())
	if g.EdgeCount() == 0 {
		return nil
	}
	fmt.Fprintln(stdout, renderTable(headers, rows, 0, 6))
	if toggles != nil {
		fmt.Fprintf(stdout, "%d tables\n", len(g.Components()))
	}
	return nil
}

