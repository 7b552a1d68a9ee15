package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/romhack/romtext/pkg/app"
	"github.com/romhack/romtext/pkg/cmd/codecs"
	"github.com/romhack/romtext/pkg/cmd/completion"
	romconfig "github.com/romhack/romtext/pkg/cmd/config"
	"github.com/romhack/romtext/pkg/cmd/decode"
	"github.com/romhack/romtext/pkg/cmd/encode"
	tablecmd "github.com/romhack/romtext/pkg/cmd/table"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New()
	root := NewRootCommand(a, version, commit)
	defer func() { _ = a.Logger.Sync() }()

	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the full command tree around a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:          "romtext",
		Short:        "Decode and encode text in ROM images",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.OutWriter = cmd.OutOrStdout()
			a.ErrWriter = cmd.ErrOrStderr()
			a.InReader = cmd.InOrStdin()

			if a.OutWriter != os.Stdout {
				a.ColorableOut = a.OutWriter
			}

			return a.InitConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.romtext/config)")
	root.PersistentFlags().StringVarP(&a.TableOverride, "table", "t", "", "set a temporary current table")
	root.PersistentFlags().StringVar(&a.TableFile, "table-file", "", "load the transliteration table from this file instead of the config")
	root.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "Enable debug logging")
	_ = root.RegisterFlagCompletionFunc("table", a.ValidTableArgs)

	root.AddCommand(
		decode.NewCommand(a),
		encode.NewCommand(a),
		codecs.NewCommand(a),
		tablecmd.NewCommand(a),
		romconfig.NewCommand(a),
		completion.NewCommand(root, a),
	)

	a.Root = root
	return root
}
