package decode

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/rle"
)

// NewCommand returns the "rle decode" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		inputFlag     = app.FormatText
		inputModeFlag = app.InputModeLine
		lineLimitFlag int
		parallelFlag  int
		maxSizeFlag   int
	)

	cmd := &cobra.Command{
		Use:   "decode [FILE...]",
		Short: "Decode run-length encoded text. Reads data from stdin or files.",
		Long: `Expand every character/count pair of the input. Input that is not a sequence of
(character, digits) pairs is rejected at the first malformed position.`,
		Example: `  echo a2b3c4 | rle decode
  rle encode -o avro words.txt | rle decode -i avro
  echo x1000000 | rle decode --max-size 1024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ApplyProfile(cmd, "input", &inputFlag, &inputModeFlag); err != nil {
				return err
			}
			dec := rle.Decoder{MaxLen: a.Profile.MaxDecodedSize}
			if cmd.Flags().Changed("max-size") {
				dec.MaxLen = maxSizeFlag
			}

			return a.Process(cmd.Context(), args, inputModeFlag, lineLimitFlag, parallelFlag, func(i int, rec []byte) ([]byte, error) {
				runs, err := app.ParseRuns(rec, inputFlag)
				if err != nil {
					return nil, err
				}
				out, err := dec.Expand(runs)
				if err != nil {
					return nil, err
				}
				a.Log.Debug("decoded record", zap.Int("record", i+1), zap.Int("bytes", len(out)))
				return out, nil
			})
		},
	}

	cmd.Flags().VarP(&inputFlag, "input", "i", "Input format: text, json, json-each-row, msgpack, avro (binary formats are hex encoded)")
	app.AddInputFlags(cmd, &inputModeFlag, &lineLimitFlag)
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "j", runtime.NumCPU(), "Number of files decoded concurrently")
	cmd.Flags().IntVar(&maxSizeFlag, "max-size", 0, "Maximum decoded size of a record in bytes, 0 for unlimited")

	if err := cmd.RegisterFlagCompletionFunc("input", app.CompleteFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	return cmd
}
