package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/plusk0/periodic-table/src/periodic"
)

// cliActions wires periodic.Actions to the terminal: flags stand in for the
// edit dialog and confirmation comes from a prompt or --yes.
func cliActions(cmd *cobra.Command, e *env) *periodic.Actions {
	yes, _ := cmd.Flags().GetBool("yes")
	return &periodic.Actions{
		Table:   e.table,
		Editor:  flagEditor{apply: applyElementFlags(cmd.Flags())},
		Confirm: newTerminalConfirm(cmd.InOrStdin(), cmd.OutOrStdout(), yes),
		IDs:     e.ids,
	}
}

func addElementFlags(fs *pflag.FlagSet) {
	fs.Int("position", 0, "Position in the table (> 0)")
	fs.String("name", "", "Element name")
	fs.Float64("weight", 0, "Atomic weight (>= 0)")
	fs.String("symbol", "", "Chemical symbol")
}

// applyElementFlags copies the flags the user set onto an element.
func applyElementFlags(fs *pflag.FlagSet) func(*periodic.Element) {
	return func(el *periodic.Element) {
		if fs.Changed("position") {
			el.Position, _ = fs.GetInt("position")
		}
		if fs.Changed("name") {
			el.Name, _ = fs.GetString("name")
		}
		if fs.Changed("weight") {
			el.Weight, _ = fs.GetFloat64("weight")
		}
		if fs.Changed("symbol") {
			el.Symbol, _ = fs.GetString("symbol")
		}
	}
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an element",
		Example: `  periodic add --position 11 --name Sodium --weight 22.99 --symbol Na`,
		Args: cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			before := e.table.Elements()
			if _, err := cliActions(cmd, e).AddElement(cmd.Context()); err != nil {
				return err
			}
			for _, el := range e.table.Elements() {
				if !containsID(before, el.ID) {
					fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", el.Name, el.ID)
				}
			}
			return nil
		}),
	}
	addElementFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("position")
	return cmd
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an element",
		Long:  "Change fields of an element. Only the flags given are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			if _, err := cliActions(cmd, e).EditElement(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", args[0])
			return nil
		}),
	}
	addElementFlags(cmd.Flags())
	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove an element",
		Args:    cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			if _, err := e.table.Lookup(args[0]); err != nil {
				return err
			}
			removed, err := cliActions(cmd, e).RemoveElement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			}
			return nil
		}),
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			ok, err := e.table.Undo()
			if err != nil {
				return err
			}
			reportStep(cmd, "undo", ok, e.table)
			return nil
		}),
	}
}

func newRedoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			ok, err := e.table.Redo()
			if err != nil {
				return err
			}
			reportStep(cmd, "redo", ok, e.table)
			return nil
		}),
	}
}

func reportStep(cmd *cobra.Command, what string, ok bool, t *periodic.Table) {
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "nothing to %s\n", what)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s done (%d undo, %d redo left)\n", what, t.HistoryLen(), t.FutureLen())
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default elements and forget all history",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			reset, err := cliActions(cmd, e).ResetTable(cmd.Context())
			if err != nil {
				return err
			}
			if reset {
				fmt.Fprintf(cmd.OutOrStdout(), "table reset to %d default elements\n", e.table.Len())
			}
			return nil
		}),
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push the table to the server (saves locally; no server yet)",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.table.PushToServer(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved")
			return nil
		}),
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the table to a .json or .yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			filter, _ := cmd.Flags().GetString("filter")
			e.table.SetFilter(filter)

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := writeExport(f, formatFor(args[0]), e.table.Visible(), e.table.Filter()); err != nil {
				f.Close()
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d elements to %s\n", len(e.table.Visible()), args[0])
			return nil
		}),
	}
	cmd.Flags().StringP("filter", "f", "", "Only export rows containing this text")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the table with the contents of a .json or .yaml file",
		Long:  "Replace the table with the contents of a .json or .yaml file. The import can be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			elements, err := readImport(f, formatFor(args[0]), e.ids)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if err := e.table.Replace(elements); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d elements\n", len(elements))
			return nil
		}),
	}
}

func containsID(elements []periodic.Element, id string) bool {
	for _, el := range elements {
		if el.ID == id {
			return true
		}
	}
	return false
}
