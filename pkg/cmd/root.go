package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/cmd/completion"
	rleconfig "github.com/birdayz/rle/pkg/cmd/config"
	"github.com/birdayz/rle/pkg/cmd/decode"
	"github.com/birdayz/rle/pkg/cmd/encode"
	"github.com/birdayz/rle/pkg/cmd/list"
	"github.com/birdayz/rle/pkg/cmd/runs"
	"github.com/birdayz/rle/pkg/cmd/str"
	"github.com/birdayz/rle/pkg/cmd/verify"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(app.New(), version, commit)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the full command tree around a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:          "rle",
		Short:        "Run-length encoding command line utility",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.OutWriter = cmd.OutOrStdout()
			a.ErrWriter = cmd.ErrOrStderr()
			a.InReader = cmd.InOrStdin()

			if a.OutWriter != os.Stdout {
				a.ColorableOut = a.OutWriter
				a.JSONFmt.DisabledColor = true
			}

			return a.InitConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.Log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.rle/config)")
	root.PersistentFlags().StringVarP(&a.ProfileOverride, "profile", "p", "", "set a temporary current profile")
	root.PersistentFlags().StringVar(&a.LogLevel, "log-level", "", "Log level: none, debug, info, warn, error (overrides the profile)")
	root.PersistentFlags().StringVar(&a.LogFormat, "log-format", "", "Log format: text, json (overrides the profile)")

	root.AddCommand(
		encode.NewCommand(a),
		decode.NewCommand(a),
		runs.NewCommand(a),
		verify.NewCommand(a),
		str.NewCommand(a),
		list.NewCommand(a),
		rleconfig.NewCommand(a),
		completion.NewCommand(root, a),
	)

	return root
}
