package app

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"
)

// OutputFormat controls how results are printed.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatRaw     OutputFormat = "raw"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatHex     OutputFormat = "hex"
)

var outputFormats = []string{"default", "raw", "json", "hex"}

func (e *OutputFormat) String() string {
	return string(*e)
}

func (e *OutputFormat) Set(v string) error {
	switch v {
	case "default", "raw", "json", "hex":
		*e = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: %s", strings.Join(outputFormats, ", "))
	}
}

func (e *OutputFormat) Type() string {
	return "OutputFormat"
}

// CompleteOutputFormat provides shell completion for --output.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return outputFormats, cobra.ShellCompDirectiveNoFileComp
}

// InputFormat controls how input bytes are read.
type InputFormat string

const (
	InputFormatRaw InputFormat = "raw"
	InputFormatHex InputFormat = "hex"
)

func (e *InputFormat) String() string {
	return string(*e)
}

func (e *InputFormat) Set(v string) error {
	switch v {
	case "raw", "hex":
		*e = InputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: raw, hex")
	}
}

func (e *InputFormat) Type() string {
	return "InputFormat"
}

// CompleteInputFormat provides shell completion for --input.
func CompleteInputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"raw", "hex"}, cobra.ShellCompDirectiveNoFileComp
}

// PrintJSON pretty-prints v to the colorable output.
func (a *App) PrintJSON(v any) error {
	b, err := a.JSONFmt.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format json: %w", err)
	}
	_, err = fmt.Fprintln(a.ColorableOut, string(b))
	return err
}

// ExecuteTemplate renders text as a Go template with sprig's hermetic
// function map.
func ExecuteTemplate(w io.Writer, text string, data any) error {
	tpl, err := template.New("romtext").Funcs(sprig.HermeticTxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse go template: %w", err)
	}
	if err := tpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute go template: %w", err)
	}
	return nil
}
