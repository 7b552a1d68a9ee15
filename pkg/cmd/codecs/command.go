package codecs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romhack/romtext/pkg/app"
	"github.com/romhack/romtext/pkg/codec"
)

// NewCommand returns the "romtext codecs" command.
func NewCommand(a *app.App) *cobra.Command {
	outputFormat := app.OutputFormatDefault

	cmd := &cobra.Command{
		Use:     "codecs",
		Aliases: []string{"codec", "ls-codecs"},
		Short:   "List registered codecs and what they support",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Capabilities do not depend on the table contents.
			descs := codec.NewRegistry(nil).Descriptors()

			if outputFormat == app.OutputFormatJSON {
				return a.PrintJSON(descs)
			}

			def := a.DefaultCodec()
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "  NAME\tDECODE\tENCODE\t\n")
			}
			for _, d := range descs {
				marker := "  "
				if d.Name == def {
					marker = "* "
				}
				fmt.Fprintf(w, "%s%v\t%v\t%v\t\n", marker, d.Name, yesNo(d.CanDecode), yesNo(d.CanEncode))
			}
			return w.Flush()
		},
	}

	a.AddNoHeadersFlag(cmd)
	cmd.Flags().Var(&outputFormat, "output", "Set output format (default, json)")
	_ = cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
