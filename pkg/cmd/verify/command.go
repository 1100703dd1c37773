package verify

import (
	"bytes"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/encoding"
	"github.com/birdayz/rle/pkg/rle"
)

const (
	StatusOK        = "OK"
	StatusAmbiguous = "AMBIGUOUS"
	StatusMismatch  = "MISMATCH"
)

// Check encodes and decodes rec and reports whether the original came back.
func Check(enc encoding.Encoder, dec encoding.Decoder, rec []byte) (status string, encoded []byte, err error) {
	encoded, err = enc.Encode(rec)
	if err != nil {
		return "", nil, err
	}
	decoded, decErr := dec.Decode(encoded)
	if decErr == nil && bytes.Equal(decoded, rec) {
		return StatusOK, encoded, nil
	}
	if rle.HasDigits(string(rec)) {
		return StatusAmbiguous, encoded, nil
	}
	if decErr != nil {
		return "", nil, decErr
	}
	return StatusMismatch, encoded, nil
}

// NewCommand returns the "rle verify" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		inputModeFlag = app.InputModeLine
		lineLimitFlag int
		parallelFlag  int
		strictFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "verify [FILE...]",
		Short: "Check that every record survives an encode/decode round trip",
		Example: `  printf 'aabb\nroom 101\n' | rle verify
  rle verify --strict words.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ApplyProfile(cmd, "", nil, &inputModeFlag); err != nil {
				return err
			}

			enc := rle.Encoder{}
			dec := rle.Decoder{MaxLen: a.Profile.MaxDecodedSize}
			var failed atomic.Int64

			err := a.Process(cmd.Context(), args, inputModeFlag, lineLimitFlag, parallelFlag, func(i int, rec []byte) ([]byte, error) {
				status, encoded, err := Check(enc, dec, rec)
				if err != nil {
					return nil, err
				}
				if status == StatusMismatch || (strictFlag && status == StatusAmbiguous) {
					failed.Add(1)
				}
				if status != StatusOK {
					a.Log.Warn("round trip failed", zap.Int("record", i+1), zap.String("status", status))
				}
				return fmt.Appendf(nil, "%s\t%s", status, encoded), nil
			})
			if err != nil {
				return err
			}
			if n := failed.Load(); n > 0 {
				return fmt.Errorf("%d record(s) failed the round trip", n)
			}
			return nil
		},
	}

	app.AddInputFlags(cmd, &inputModeFlag, &lineLimitFlag)
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "j", runtime.NumCPU(), "Number of files verified concurrently")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Treat ambiguous records (containing digits) as failures")
	return cmd
}
