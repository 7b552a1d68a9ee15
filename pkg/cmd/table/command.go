package table

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romhack/romtext/pkg/app"
	"github.com/romhack/romtext/pkg/table"
)

// Row is one entry of "table show --output json".
type Row struct {
	Value string `json:"value"`
	Glyph string `json:"glyph,omitempty"`
	Found bool   `json:"found"`
}

// NewCommand returns the "romtext table" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect and convert transliteration tables",
	}
	cmd.AddCommand(
		newShowCommand(a),
		newConvertCommand(a),
	)
	return cmd
}

func newShowCommand(a *app.App) *cobra.Command {
	var (
		missingFlag  bool
		outputFormat = app.OutputFormatDefault
	)

	cmd := &cobra.Command{
		Use:   "show [BYTE...]",
		Short: "Print entries of the active table",
		Example: `  romtext table show
  romtext table show 0x0A 0x24
  romtext table show --missing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.Table()
			if err != nil {
				return err
			}

			var rows []Row
			switch {
			case missingFlag:
				for _, b := range t.Missing() {
					rows = append(rows, Row{Value: fmt.Sprintf("0x%02X", b)})
				}
			case len(args) > 0:
				for _, arg := range args {
					b, err := table.ParseByte(arg)
					if err != nil {
						return err
					}
					g, ok := t.Lookup(b)
					rows = append(rows, Row{Value: fmt.Sprintf("0x%02X", b), Glyph: g, Found: ok})
				}
			default:
				for _, e := range t.Entries() {
					rows = append(rows, Row{Value: fmt.Sprintf("0x%02X", e.Value), Glyph: e.Glyph, Found: true})
				}
			}

			if outputFormat == app.OutputFormatJSON {
				return a.PrintJSON(rows)
			}

			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "BYTE\tGLYPH\t\n")
			}
			for _, r := range rows {
				glyph := r.Glyph
				if !r.Found {
					glyph = "-"
				}
				fmt.Fprintf(w, "%v\t%v\t\n", r.Value, glyph)
			}
			return w.Flush()
		},
	}

	a.AddNoHeadersFlag(cmd)
	cmd.Flags().BoolVar(&missingFlag, "missing", false, "List byte values that have no entry")
	cmd.Flags().Var(&outputFormat, "output", "Set output format (default, json)")
	_ = cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat)
	return cmd
}

func newConvertCommand(a *app.App) *cobra.Command {
	var (
		outFlag string
		to      = table.FormatYAML
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write the active table in another format",
		Example: `  romtext table convert --table-file mt2.yaml --to msgpack -o mt2.mpk
  romtext table convert --to properties`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFlag != "" && !cmd.Flags().Changed("to") {
				f, err := table.FormatFromPath(outFlag)
				if err != nil {
					return err
				}
				to = f
			}

			t, err := a.Table()
			if err != nil {
				return err
			}
			data, err := t.Marshal(to)
			if err != nil {
				return fmt.Errorf("marshal table: %w", err)
			}

			if outFlag == "" {
				_, err = a.OutWriter.Write(data)
				return err
			}
			if err := os.WriteFile(outFlag, data, 0o644); err != nil {
				return fmt.Errorf("write table: %w", err)
			}
			a.Logger.Info("converted table",
				zap.String("source", t.Source()),
				zap.String("path", outFlag),
				zap.String("format", string(to)),
			)
			fmt.Fprintf(a.OutWriter, "Wrote %d entries to %s.\n", t.Len(), outFlag)
			return nil
		},
	}

	cmd.Flags().Var(&to, "to", "Target format (yaml, json, msgpack, properties); guessed from --out when omitted")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write to this file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("to", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(table.Formats))
		for _, f := range table.Formats {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
