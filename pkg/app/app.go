package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romhack/romtext/pkg/codec"
	"github.com/romhack/romtext/pkg/config"
	"github.com/romhack/romtext/pkg/logging"
	"github.com/romhack/romtext/pkg/table"
)

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Config state
	Cfg           config.Config
	CfgFile       string
	TableOverride string
	TableFile     string
	Verbose       bool

	Logger  *zap.Logger
	JSONFmt *prettyjson.Formatter

	// Display
	NoHeaderFlag bool

	// Root command reference (for completion generation)
	Root *cobra.Command

	tableOnce sync.Once
	table     *table.Table
	tableErr  error
}

// New creates an App with sane defaults.
func New() *App {
	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		Logger:       zap.NewNop(),
		JSONFmt:      prettyjson.NewFormatter(),
	}
}

// InitConfig reads the config file and sets up logging.
// Called by PersistentPreRunE on the root command.
func (a *App) InitConfig() error {
	var err error
	a.Cfg, err = config.ReadConfig(a.CfgFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.Cfg.TableOverride = a.TableOverride

	logCfg := a.Cfg.Log
	if a.Verbose {
		logCfg.Level = "debug"
	}
	a.Logger, err = logging.SetupLogger(logCfg, a.ErrWriter)
	if err != nil {
		return fmt.Errorf("unable to set up logging: %w", err)
	}
	table.SetLogger(a.Logger.Named("table"))

	if a.ColorableOut == a.OutWriter && a.OutWriter != os.Stdout {
		a.JSONFmt.DisabledColor = true
	}

	return nil
}

// Table returns the transliteration table for this invocation. It is
// loaded on first use: --table-file wins, then the active table of the
// config, then the embedded default.
func (a *App) Table() (*table.Table, error) {
	a.tableOnce.Do(func() {
		a.table, a.tableErr = a.loadTable()
		if a.tableErr == nil {
			a.Logger.Debug("using transliteration table",
				zap.String("source", a.table.Source()),
				zap.Int("entries", a.table.Len()),
			)
		}
	})
	return a.table, a.tableErr
}

func (a *App) loadTable() (*table.Table, error) {
	if a.TableFile != "" {
		t := config.Table{Path: a.TableFile}
		path, err := t.ResolvedPath()
		if err != nil {
			return nil, err
		}
		return table.Load(path)
	}

	if active := a.Cfg.ActiveTable(); active != nil {
		path, err := active.ResolvedPath()
		if err != nil {
			return nil, err
		}
		t, err := table.Load(path)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", active.Name, err)
		}
		return t, nil
	}

	if a.Cfg.TableOverride != "" {
		return nil, fmt.Errorf("table %q not found in config", a.Cfg.TableOverride)
	}
	return table.Default(), nil
}

// Registry returns a codec registry backed by the active table.
func (a *App) Registry() (*codec.Registry, error) {
	t, err := a.Table()
	if err != nil {
		return nil, err
	}
	return codec.NewRegistry(t), nil
}

// DefaultCodec is the codec used when --codec is not given.
func (a *App) DefaultCodec() string {
	if a.Cfg.DefaultCodec != "" {
		return a.Cfg.DefaultCodec
	}
	return codec.NameHexify
}

// AddCodecFlag installs --codec on cmd, completing names that support op.
func (a *App) AddCodecFlag(cmd *cobra.Command, p *string, op codec.Operation) {
	cmd.Flags().StringVarP(p, "codec", "C", "", "Codec name (default from config, else Hexify)")
	_ = cmd.RegisterFlagCompletionFunc("codec", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return codec.NewRegistry(nil).NamesFor(op), cobra.ShellCompDirectiveNoFileComp
	})
}

// AddNoHeadersFlag installs --no-headers on cmd.
func (a *App) AddNoHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.NoHeaderFlag, "no-headers", false, "Hide table headers")
}

// ValidCodecArgs provides shell completion for codec names.
func (a *App) ValidCodecArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return codec.NewRegistry(nil).Names(), cobra.ShellCompDirectiveNoFileComp
}

// ValidTableArgs provides shell completion for configured table names.
func (a *App) ValidTableArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	tableList := make([]string, 0, len(a.Cfg.Tables))
	for _, t := range a.Cfg.Tables {
		tableList = append(tableList, t.Name)
	}
	return tableList, cobra.ShellCompDirectiveNoFileComp
}

const (
	TabwriterMinWidth       = 6
	TabwriterMinWidthNested = 2
	TabwriterWidth          = 4
	TabwriterPadding        = 3
	TabwriterPadChar        = ' '
	TabwriterFlags          = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}
