package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/birdayz/rle/pkg/app"
	"github.com/birdayz/rle/pkg/config"
)

// NewCommand returns the "rle config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Handle rle configuration",
	}

	cmd.AddCommand(
		newCurrentProfileCommand(a),
		newUseProfileCommand(a),
		newGetProfilesCommand(a),
		newAddProfileCommand(a),
		newRemoveProfileCommand(a),
		newSelectProfileCommand(a),
		newImportCommand(a),
	)

	return cmd
}

func newCurrentProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "current-profile",
		Short: "Displays the current profile",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.OutWriter, a.Cfg.CurrentProfile)
		},
	}
}

func newUseProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "use-profile NAME",
		Short:             "Sets the current profile in the configuration",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidProfileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return switchProfile(a, args[0])
		},
	}
}

func switchProfile(a *app.App, name string) error {
	if !a.Cfg.HasProfile(name) {
		return fmt.Errorf("profile with name %v not found", name)
	}
	if err := a.Cfg.SetCurrentProfile(name); err != nil {
		return fmt.Errorf("unable to write config: %w", err)
	}
	fmt.Fprintf(a.OutWriter, "Switched to profile \"%v\".\n", name)
	return nil
}

func newGetProfilesCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-profiles",
		Short: "Display profiles in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "  NAME\tOUTPUT\tINPUT-MODE\tMAX-DECODED-SIZE\t\n")
			}
			for _, p := range a.Cfg.Profiles {
				marker := "  "
				if p.Name == a.Cfg.CurrentProfile {
					marker = "* "
				}
				fmt.Fprintf(w, "%s%v\t%v\t%v\t%v\t\n", marker, p.Name, orDefault(p.Output, "text"), orDefault(p.InputMode, "line"), p.MaxDecodedSize)
			}
			return w.Flush()
		},
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func newAddProfileCommand(a *app.App) *cobra.Command {
	var (
		output    = app.FormatText
		inputMode = app.InputModeLine
		maxSize   int
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:     "add-profile NAME",
		Short:   "Add profile",
		Example: "  rle config add-profile wire --output avro --max-decoded-size 1048576",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if a.Cfg.HasProfile(name) {
				return fmt.Errorf("could not add profile: profile with name '%v' exists already", name)
			}
			if maxSize < 0 {
				return fmt.Errorf("--max-decoded-size must not be negative")
			}

			a.Cfg.Profiles = append(a.Cfg.Profiles, &config.Profile{
				Name:           name,
				Output:         string(output),
				InputMode:      string(inputMode),
				MaxDecodedSize: maxSize,
				LogLevel:       logLevel,
				LogFormat:      logFormat,
			})
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Added profile.")
			return nil
		},
	}

	cmd.Flags().Var(&output, "output", "Default output format")
	cmd.Flags().Var(&inputMode, "input-mode", "Default input mode")
	cmd.Flags().IntVar(&maxSize, "max-decoded-size", 0, "Default maximum decoded size in bytes")
	cmd.Flags().StringVar(&logLevel, "default-log-level", "", "Default log level")
	cmd.Flags().StringVar(&logFormat, "default-log-format", "", "Default log format")
	return cmd
}

func newRemoveProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "remove-profile NAME",
		Short:             "Remove profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidProfileArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cfg.RemoveProfile(args[0]); err != nil {
				return fmt.Errorf("could not delete profile: %w", err)
			}
			fmt.Fprintln(a.OutWriter, "Removed profile.")
			return nil
		},
	}
}

func newSelectProfileCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-profile",
		Short: "Interactively select a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.Cfg.Profiles) == 0 {
				return fmt.Errorf("no profiles configured")
			}

			var names []string
			pos := 0
			for k, p := range a.Cfg.Profiles {
				names = append(names, p.Name)
				if p.Name == a.Cfg.CurrentProfile {
					pos = k
				}
			}

			p := promptui.Select{
				Label:     "Select profile",
				Items:     names,
				Size:      10,
				CursorPos: pos,
				Searcher: func(input string, index int) bool {
					name := strings.ToLower(names[index])
					return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
				},
				Stdin:  readCloser{a.InReader},
				Stdout: writeCloser{a.OutWriter},
			}

			_, selected, err := p.Run()
			if err != nil {
				// Cancelled with Ctrl-C or EOF.
				return nil
			}
			return switchProfile(a, selected)
		},
	}
}

func newImportCommand(a *app.App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "import FILE",
		Short:   "Import a .properties file as a profile into the $HOME/.rle/config file",
		Example: "  rle config import ~/team/rle.properties --name team",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			profile, err := config.ImportProperties(args[0], name)
			if err != nil {
				return fmt.Errorf("failed to import %v: %w", args[0], err)
			}

			replaced := false
			for i, p := range a.Cfg.Profiles {
				if p.Name == name {
					a.Cfg.Profiles[i] = profile
					replaced = true
					break
				}
			}
			if !replaced {
				a.Cfg.Profiles = append(a.Cfg.Profiles, profile)
			}
			if a.Cfg.CurrentProfile == "" {
				a.Cfg.CurrentProfile = name
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(a.OutWriter, "Imported profile \"%v\".\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Profile name (default is the file name without extension)")
	return cmd
}

type readCloser struct{ io.Reader }

func (readCloser) Close() error { return nil }

type writeCloser struct{ io.Writer }

func (writeCloser) Close() error { return nil }
