package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romhack/romtext/pkg/app"
	"github.com/romhack/romtext/pkg/codec"
)

// Result is what encode prints for --output json.
type Result struct {
	Codec  string `json:"codec"`
	Text   string `json:"text"`
	Hex    string `json:"hex"`
	Length int    `json:"length"`
	Patch  string `json:"patch,omitempty"`
	Offset int64  `json:"offset,omitempty"`
}

// NewCommand returns the "romtext encode" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		codecFlag    string
		patchFlag    string
		offsetFlag   string
		outputFormat = app.OutputFormatDefault
	)

	cmd := &cobra.Command{
		Use:   "encode [TEXT]",
		Short: "Encode text to ROM bytes",
		Long: `Encode text to bytes with one of the registered codecs. The text is read
from stdin when no argument is given. Only codecs with an encoder are accepted.`,
		Example: `  romtext encode "41 42 43" -C HexifySpaces --output raw > out.bin
  romtext encode 8182 --patch game.sfc --offset 0x1F000
  echo -n "DEADBEEF" | romtext encode --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if codecFlag == "" {
				codecFlag = a.DefaultCodec()
			}

			// Encoders never read the table; skip loading it.
			enc, err := codec.NewRegistry(nil).Encoder(codecFlag)
			if err != nil {
				return err
			}

			var offset int64
			if patchFlag != "" {
				if offset, err = app.ParseOffset(offsetFlag); err != nil {
					return err
				}
			} else if offsetFlag != "" {
				return fmt.Errorf("--offset requires --patch")
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				in, err := io.ReadAll(a.InReader)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				text = strings.TrimRight(string(in), "\r\n")
			}

			data, err := enc.Encode(text)
			if err != nil {
				return fmt.Errorf("encode failed: %w", err)
			}
			a.Logger.Debug("encoded",
				zap.String("codec", enc.Name()),
				zap.Int("runes", len([]rune(text))),
				zap.Int("bytes", len(data)),
			)

			if patchFlag != "" {
				if err := app.PatchFile(patchFlag, offset, data); err != nil {
					return err
				}
				a.Logger.Info("patched file",
					zap.String("path", patchFlag),
					zap.Int64("offset", offset),
					zap.Int("bytes", len(data)),
				)
			}

			hexText, _ := codec.HexifySpaces{}.Decode(data)
			switch outputFormat {
			case app.OutputFormatJSON:
				return a.PrintJSON(Result{
					Codec:  enc.Name(),
					Text:   text,
					Hex:    hexText,
					Length: len(data),
					Patch:  patchFlag,
					Offset: offset,
				})
			case app.OutputFormatRaw:
				_, err := a.OutWriter.Write(data)
				return err
			case app.OutputFormatHex:
				compact, _ := codec.Hexify{}.Decode(data)
				fmt.Fprintln(a.OutWriter, compact)
			default:
				if patchFlag != "" {
					fmt.Fprintf(a.OutWriter, "Wrote %d bytes to %s at 0x%X.\n", len(data), patchFlag, offset)
					return nil
				}
				fmt.Fprintln(a.OutWriter, hexText)
			}
			return nil
		},
	}

	a.AddCodecFlag(cmd, &codecFlag, codec.OpEncode)
	cmd.Flags().StringVar(&patchFlag, "patch", "", "Write the encoded bytes into this file in place")
	cmd.Flags().StringVarP(&offsetFlag, "offset", "o", "", "Offset to patch at (decimal or 0x hex)")
	cmd.Flags().Var(&outputFormat, "output", "Set output format (default, raw, hex, json)")
	_ = cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat)

	return cmd
}
