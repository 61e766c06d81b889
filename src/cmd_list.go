package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/plusk0/periodic-table/src/periodic"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

var columnHeaders = []string{"Position", "Name", "Weight", "Symbol", "ID"}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the table",
		Long: `Print the table sorted by position and weight.

--filter keeps rows whose name, symbol, position or weight contains the
text, ignoring case. --plain prints tab-separated rows for piping.`,
		Args: cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			filter, _ := cmd.Flags().GetString("filter")
			plain, _ := cmd.Flags().GetBool("plain")
			e.table.SetFilter(filter)
			printElements(cmd.OutOrStdout(), e.table.Visible(), plain)
			return nil
		}),
	}
	cmd.Flags().StringP("filter", "f", "", "Only show rows containing this text")
	cmd.Flags().Bool("plain", false, "Tab-separated output without borders")
	return cmd
}

func elementRow(el periodic.Element) []string {
	return []string{
		strconv.Itoa(el.Position),
		el.Name,
		periodic.FormatWeight(el.Weight),
		el.Symbol,
		el.ID,
	}
}

func printElements(w io.Writer, elements []periodic.Element, plain bool) {
	if plain {
		for _, el := range elements {
			fmt.Fprintln(w, strings.Join(elementRow(el), "\t"))
		}
		return
	}
	if len(elements) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no matching elements"))
		return
	}

	rows := make([][]string, 0, len(elements))
	for _, el := range elements {
		rows = append(rows, elementRow(el))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columnHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || col == 2:
				return numberStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.Render())
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the table is stored and how much history it has",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			out := cmd.OutOrStdout()
			location := e.cfg.DBPath
			if _, ok := e.store.(*periodic.MemoryStore); ok {
				location = "memory"
			}
			fmt.Fprintf(out, "store:    %s\n", location)
			fmt.Fprintf(out, "elements: %d\n", e.table.Len())
			fmt.Fprintf(out, "undo:     %d\n", e.table.HistoryLen())
			fmt.Fprintf(out, "redo:     %d\n", e.table.FutureLen())
			if s, ok := e.store.(*sqliteStore); ok {
				keys, err := s.Keys()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "keys:     %s\n", strings.Join(keys, ", "))
			}
			return nil
		}),
	}
}
