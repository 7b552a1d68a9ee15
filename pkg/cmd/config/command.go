package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/romhack/romtext/pkg/app"
	"github.com/romhack/romtext/pkg/codec"
	"github.com/romhack/romtext/pkg/config"
	"github.com/romhack/romtext/pkg/table"
)

// NewCommand returns the "romtext config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Handle romtext configuration",
	}

	cmd.AddCommand(
		newCurrentTableCommand(a),
		newGetTablesCommand(a),
		newUseTableCommand(a),
		newAddTableCommand(a),
		newRemoveTableCommand(a),
		newSelectTableCommand(a),
		newSetCodecCommand(a),
		newSelectCodecCommand(a),
	)

	return cmd
}

func newCurrentTableCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "current-table",
		Short: "Displays the current table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.OutWriter, a.Cfg.CurrentTable)
		},
	}
}

func newGetTablesCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-tables",
		Short: "Display tables in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "  NAME\tPATH\t\n")
			}
			for _, t := range a.Cfg.Tables {
				marker := "  "
				if t.Name == a.Cfg.CurrentTable {
					marker = "* "
				}
				fmt.Fprintf(w, "%s%v\t%v\t\n", marker, t.Name, t.Path)
			}
			return w.Flush()
		},
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func newUseTableCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "use-table [NAME]",
		Short:             "Sets the current table in the configuration",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidTableArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.Cfg.SetCurrentTable(name); err != nil {
				return fmt.Errorf("table with name %v not found", name)
			}
			fmt.Fprintf(a.OutWriter, "Switched to table \"%v\".\n", name)
			return nil
		},
	}
}

func newAddTableCommand(a *app.App) *cobra.Command {
	var (
		pathFlag string
		noCheck  bool
	)

	cmd := &cobra.Command{
		Use:     "add-table [NAME]",
		Short:   "Add a transliteration table",
		Example: "  romtext config add-table mt2 --path ~/tables/mt2.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if a.Cfg.HasTable(name) {
				return fmt.Errorf("could not add table: table with name '%v' exists already", name)
			}

			entry := &config.Table{Name: name, Path: pathFlag}
			if !noCheck {
				resolved, err := entry.ResolvedPath()
				if err != nil {
					return err
				}
				if _, err := table.Load(resolved); err != nil {
					return fmt.Errorf("could not add table: %w", err)
				}
			}

			a.Cfg.Tables = append(a.Cfg.Tables, entry)
			if a.Cfg.CurrentTable == "" {
				a.Cfg.CurrentTable = name
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Added table.")
			return nil
		},
	}

	cmd.Flags().StringVar(&pathFlag, "path", "", "Path to the table file (yaml, json, msgpack or properties)")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "Do not load the table before adding it")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func newRemoveTableCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "remove-table [NAME]",
		Short:             "Remove a table from the configuration",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidTableArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			pos := -1
			for i, t := range a.Cfg.Tables {
				if t.Name == name {
					pos = i
					break
				}
			}
			if pos == -1 {
				return fmt.Errorf("could not delete table: table with name '%v' does not exist", name)
			}

			a.Cfg.Tables = append(a.Cfg.Tables[:pos], a.Cfg.Tables[pos+1:]...)
			if a.Cfg.CurrentTable == name {
				a.Cfg.CurrentTable = ""
			}

			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Removed table.")
			return nil
		},
	}
}

func newSelectTableCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-table",
		Short: "Interactively select a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.Cfg.Tables) == 0 {
				return fmt.Errorf("no tables configured, add one with \"romtext config add-table\"")
			}

			names := make([]string, 0, len(a.Cfg.Tables))
			pos := 0
			for i, t := range a.Cfg.Tables {
				names = append(names, t.Name)
				if t.Name == a.Cfg.CurrentTable {
					pos = i
				}
			}

			selected, ok := selectItem("Select table", names, pos)
			if !ok {
				return nil
			}
			if err := a.Cfg.SetCurrentTable(selected); err != nil {
				return fmt.Errorf("table with name %v not found", selected)
			}
			fmt.Fprintf(a.OutWriter, "Switched to table \"%v\".\n", selected)
			return nil
		},
	}
}

func newSetCodecCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "set-codec [NAME]",
		Short:             "Sets the codec used when --codec is not given",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidCodecArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCodec(a, args[0])
		},
	}
}

func newSelectCodecCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-codec",
		Short: "Interactively select the default codec",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := codec.NewRegistry(nil).Names()
			pos := 0
			for i, n := range names {
				if n == a.DefaultCodec() {
					pos = i
				}
			}

			selected, ok := selectItem("Select codec", names, pos)
			if !ok {
				return nil
			}
			return setCodec(a, selected)
		},
	}
}

func setCodec(a *app.App, name string) error {
	if _, err := codec.NewRegistry(nil).Lookup(name); err != nil {
		return err
	}
	if err := a.Cfg.SetDefaultCodec(name); err != nil {
		return fmt.Errorf("unable to write config: %w", err)
	}
	fmt.Fprintf(a.OutWriter, "Default codec set to \"%v\".\n", name)
	return nil
}

// selectItem runs a searchable prompt over items. ok is false when the user
// cancelled.
func selectItem(label string, items []string, pos int) (string, bool) {
	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	p := promptui.Select{
		Label:     label,
		Items:     items,
		Searcher:  searcher,
		Size:      10,
		CursorPos: pos,
	}

	_, selected, err := p.Run()
	if err != nil {
		// Ctrl-C and friends are not errors.
		return "", false
	}
	return selected, true
}
