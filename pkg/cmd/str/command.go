package str

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/strutil"
)

// NewCommand returns the "rle str" command with one subcommand per string
// operation.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "str",
		Short: "String utilities",
		Example: `  rle str reverse hello
  echo foo_bar_baz | rle str snake-to-camel`,
	}
	for _, op := range strutil.Ops() {
		cmd.AddCommand(newOpCommand(a, op))
	}
	return cmd
}

func newOpCommand(a *app.App, op strutil.Op) *cobra.Command {
	var lineLimitFlag int

	cmd := &cobra.Command{
		Use:   op.Name + " [TEXT...]",
		Short: op.Short + ". Reads lines from stdin without TEXT.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				for _, arg := range args {
					fmt.Fprintln(a.OutWriter, op.Fn(arg))
				}
				return nil
			}
			return a.Process(cmd.Context(), nil, app.InputModeLine, lineLimitFlag, 1, func(_ int, rec []byte) ([]byte, error) {
				return []byte(op.Fn(string(rec))), nil
			})
		},
	}
	cmd.Flags().IntVar(&lineLimitFlag, "line-length-limit", 0, "line length limit")
	return cmd
}
