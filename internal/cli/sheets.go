package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetgraph/pkg/xlsx"
)

// sheetsCommand lists the worksheets of a workbook.
func (c *CLI) sheetsCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "sheets [book.xlsx]",
		Short: "List the worksheets of a workbook",
		Long: `List the worksheets of a workbook together with their used ranges.

With --pick, an interactive list is shown and the chosen sheet name is
printed, ready for detect --sheet:

  sheetgraph detect sheet.json --xlsx book.xlsx --sheet "$(sheetgraph sheets book.xlsx --pick)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := readSheets(args[0])
			if err != nil {
				return err
			}
			if pick {
				return pickSheet(cmd.OutOrStdout(), sheets)
			}
			return printSheets(cmd.OutOrStdout(), sheets)
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a sheet interactively and print its name")

	return cmd
}

func readSheets(path string) ([]SheetInfo, error) {
	wb, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	names := wb.Sheets()
	out := make([]SheetInfo, len(names))
	for i, name := range names {
		used, err := wb.UsedRange(name)
		if err != nil {
			return nil, err
		}
		out[i] = SheetInfo{Name: name, UsedRange: used}
	}
	return out, nil
}

func printSheets(w io.Writer, sheets []SheetInfo) error {
	rows := make([][]string, len(sheets))
	for i, s := range sheets {
		rows[i] = []string{strconv.Itoa(i + 1), s.Name, orDash(s.UsedRange)}
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"#", "Sheet", "Used range"}, rows, 0))
	return err
}

// pickSheet runs the interactive picker on stderr and prints the selected
// name to w, so the output can be captured by a shell.
func pickSheet(w io.Writer, sheets []SheetInfo) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook has no worksheets")
	}
	final, err := tea.NewProgram(NewSheetListModel(sheets), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("sheet picker: %w", err)
	}
	m := final.(SheetListModel)
	if m.Selected == nil {
		return fmt.Errorf("no sheet selected")
	}
	_, err = fmt.Fprintln(w, m.Selected.Name)
	return err
}
