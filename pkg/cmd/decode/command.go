package decode

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romhack/romtext/pkg/app"
	"github.com/romhack/romtext/pkg/codec"
)

// Result is what decode prints for --output json and exposes to --template.
type Result struct {
	Codec  string `json:"codec"`
	Source string `json:"source"`
	Offset int64  `json:"offset"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// NewCommand returns the "romtext decode" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		codecFlag    string
		offsetFlag   string
		lengthFlag   string
		templateFlag string
		inputFormat  = app.InputFormatRaw
		outputFormat = app.OutputFormatDefault
	)

	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Decode ROM bytes to text",
		Long:  "Decode a byte range of a ROM image (or stdin) to text with one of the registered codecs.",
		Example: `  romtext decode game.sfc --offset 0x1F000 --length 64 --codec Mt2GarbageTextPair
  romtext decode game.sfc -o 0x1F000 -n 16 -C HexifySpaces
  echo "41 42 43" | romtext decode --input hex -C ASCII
  romtext decode game.sfc -o 0x200 -n 8 --template '{{ .Offset | printf "%06X" }} {{ .Text }}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if codecFlag == "" {
				codecFlag = a.DefaultCodec()
			}
			if outputFormat == app.OutputFormatHex {
				return fmt.Errorf("--output hex is not supported by decode, use --codec HexifySpaces")
			}

			reg, err := a.Registry()
			if err != nil {
				return err
			}
			dec, err := reg.Decoder(codecFlag)
			if err != nil {
				return err
			}

			offset, err := app.ParseOffset(offsetFlag)
			if err != nil {
				return err
			}
			length, err := app.ParseOffset(lengthFlag)
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			input, err := a.ReadInput(path, inputFormat)
			if err != nil {
				return err
			}
			data, err := app.Slice(input, offset, length)
			if err != nil {
				return err
			}

			text, err := dec.Decode(data)
			if err != nil {
				return fmt.Errorf("decode failed: %w", relocate(err, offset))
			}
			a.Logger.Debug("decoded",
				zap.String("codec", dec.Name()),
				zap.Int64("offset", offset),
				zap.Int("bytes", len(data)),
			)

			res := Result{
				Codec:  dec.Name(),
				Source: path,
				Offset: offset,
				Length: len(data),
				Text:   text,
			}
			if res.Source == "" {
				res.Source = "-"
			}

			if templateFlag != "" {
				if err := app.ExecuteTemplate(a.OutWriter, templateFlag, res); err != nil {
					return err
				}
				fmt.Fprintln(a.OutWriter)
				return nil
			}

			switch outputFormat {
			case app.OutputFormatJSON:
				return a.PrintJSON(res)
			case app.OutputFormatRaw:
				fmt.Fprint(a.OutWriter, text)
			default:
				fmt.Fprintln(a.OutWriter, text)
			}
			return nil
		},
	}

	a.AddCodecFlag(cmd, &codecFlag, codec.OpDecode)
	cmd.Flags().StringVarP(&offsetFlag, "offset", "o", "", "Offset of the first byte to decode (decimal or 0x hex)")
	cmd.Flags().StringVarP(&lengthFlag, "length", "n", "", "Number of bytes to decode (default: to the end of the input)")
	cmd.Flags().Var(&inputFormat, "input", "Set input format (raw, hex)")
	cmd.Flags().Var(&outputFormat, "output", "Set output format (default, raw, json)")
	cmd.Flags().StringVar(&templateFlag, "template", "", "Render the result with a Go template (sprig functions available)")
	_ = cmd.RegisterFlagCompletionFunc("input", app.CompleteInputFormat)
	_ = cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat)

	return cmd
}

// relocate rewrites the offset of a byte error from the decoded slice to
// the whole input.
func relocate(err error, base int64) error {
	var be *codec.ByteError
	if !errors.As(err, &be) || base == 0 {
		return err
	}
	return &codec.ByteError{
		Codec:  be.Codec,
		Offset: be.Offset + int(base),
		Value:  be.Value,
		Err:    be.Err,
	}
}
