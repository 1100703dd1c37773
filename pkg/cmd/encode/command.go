package encode

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/rle"
)

// ErrDigitsInInput is returned in --strict mode for input that Decode could
// not reproduce.
var ErrDigitsInInput = errors.New("input contains digits and cannot be decoded unambiguously")

// NewCommand returns the "rle encode" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		outputFlag    = app.FormatText
		inputModeFlag = app.InputModeLine
		lineLimitFlag int
		parallelFlag  int
		templateFlag  bool
		strictFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "encode [FILE...]",
		Short: "Run-length encode text. Reads data from stdin or files.",
		Long: `Replace every run of identical characters with the character followed by the
length of the run. Input is read from stdin, or from the given files, one record
per line by default.

Digits in the input are not escaped. Encoding such input prints a warning; use
--strict to fail instead. Input must be valid UTF-8.`,
		Example: `  echo aabbbcccc | rle encode
  rle encode --input-mode full notes.txt
  rle encode -o json-each-row a.txt b.txt
  echo '{{ repeat 12 "x" }}' | rle encode --template`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ApplyProfile(cmd, "output", &outputFlag, &inputModeFlag); err != nil {
				return err
			}

			var warnOnce sync.Once
			return a.Process(cmd.Context(), args, inputModeFlag, lineLimitFlag, parallelFlag, func(i int, rec []byte) ([]byte, error) {
				if templateFlag {
					var err error
					rec, err = app.RenderTemplate(rec, map[string]any{"i": i})
					if err != nil {
						return nil, err
					}
				}

				s := string(rec)
				if err := rle.ValidateInput(s); err != nil {
					return nil, err
				}
				if rle.HasDigits(s) {
					if strictFlag {
						return nil, ErrDigitsInInput
					}
					a.Log.Warn("input contains digits", zap.Int("record", i+1))
					warnOnce.Do(func() {
						fmt.Fprintln(a.ErrWriter, "warning: input contains digits, the encoding cannot be decoded unambiguously")
					})
				}

				runs := rle.Runs(s)
				a.Log.Debug("encoded record", zap.Int("record", i+1), zap.Int("runs", len(runs)))
				return a.RenderRuns(runs, outputFlag)
			})
		},
	}

	cmd.Flags().VarP(&outputFlag, "output", "o", "Output format: text, json, json-each-row, msgpack, avro (binary formats are hex encoded)")
	app.AddInputFlags(cmd, &inputModeFlag, &lineLimitFlag)
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "j", runtime.NumCPU(), "Number of files encoded concurrently")
	cmd.Flags().BoolVar(&templateFlag, "template", false, "run data through go template engine")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Fail on input containing digits")

	if err := cmd.RegisterFlagCompletionFunc("output", app.CompleteFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	return cmd
}
