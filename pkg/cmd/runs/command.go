package runs

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/rle"
)

type source struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewCommand returns the "rle runs" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		inputModeFlag = app.InputModeLine
		lineLimitFlag int
	)

	cmd := &cobra.Command{
		Use:   "runs [FILE...]",
		Short: "Show the runs of the input as a table",
		Example: `  echo aabbbcccc | rle runs
  rle runs --no-headers --input-mode full notes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ApplyProfile(cmd, "", nil, &inputModeFlag); err != nil {
				return err
			}

			sources := []source{{name: "-", open: func() (io.ReadCloser, error) {
				return io.NopCloser(a.InReader), nil
			}}}
			if len(args) > 0 {
				sources = sources[:0]
				for _, path := range args {
					sources = append(sources, source{name: path, open: func() (io.ReadCloser, error) {
						return os.Open(path)
					}})
				}
			}

			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "SOURCE\tRECORD\tRUN\tCHAR\tCOUNT\tOFFSET\t\n")
			}
			for _, src := range sources {
				r, err := src.open()
				if err != nil {
					return fmt.Errorf("unable to open input: %w", err)
				}
				records, err := app.Collect(r, inputModeFlag, lineLimitFlag)
				r.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", src.name, err)
				}
				for i, rec := range records {
					if err := rle.ValidateInput(string(rec)); err != nil {
						return fmt.Errorf("%s: record %d: %w", src.name, i+1, err)
					}
					offset := 0
					for j, run := range rle.Runs(string(rec)) {
						fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\t\n", src.name, i+1, j+1, app.DisplayRune(run.Char), run.Count, offset)
						offset += run.Count * len(string(run.Char))
					}
				}
			}
			return w.Flush()
		},
	}

	app.AddInputFlags(cmd, &inputModeFlag, &lineLimitFlag)
	a.AddNoHeadersFlag(cmd)
	return cmd
}
