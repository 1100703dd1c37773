package app

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/birdayz/rle/pkg/config"
	"github.com/birdayz/rle/pkg/logger"
)

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Config state
	Cfg             config.Config
	Profile         *config.Profile
	CfgFile         string
	ProfileOverride string
	LogLevel        string
	LogFormat       string

	Log     *zap.Logger
	JSONFmt *prettyjson.Formatter

	// Display
	NoHeaderFlag bool
}

// New creates an App with sane defaults.
func New() *App {
	jsonFmt := prettyjson.NewFormatter()
	jsonFmt.DisabledColor = !isTerminal(os.Stdout)

	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		Log:          zap.NewNop(),
		JSONFmt:      jsonFmt,
	}
}

// InitConfig reads the config file, resolves the active profile and builds
// the logger. Called by PersistentPreRunE on the root command.
func (a *App) InitConfig() error {
	var err error
	a.Cfg, err = config.ReadConfig(a.CfgFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.Cfg.ProfileOverride = a.ProfileOverride
	if a.ProfileOverride != "" && !a.Cfg.HasProfile(a.ProfileOverride) {
		return fmt.Errorf("profile %q not found in config", a.ProfileOverride)
	}

	if p := a.Cfg.ActiveProfile(); p != nil {
		a.Profile = p
	} else {
		a.Profile = &config.Profile{}
	}
	if a.Profile.InputMode == "" {
		a.Profile.InputMode = string(InputModeLine)
	}
	if a.Profile.Output == "" {
		a.Profile.Output = string(FormatText)
	}

	if a.LogLevel != "" {
		a.Profile.LogLevel = a.LogLevel
	}
	if a.LogFormat != "" {
		a.Profile.LogFormat = a.LogFormat
	}
	a.Log, err = logger.NewLogger(a.Profile.LogFormat, a.Profile.LogLevel, a.ErrWriter)
	if err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	a.Log.Debug("config loaded",
		zap.String("path", a.Cfg.Path()),
		zap.String("profile", a.Profile.Name),
	)
	return nil
}

// ValidProfileArgs provides shell completion for profile names.
func (a *App) ValidProfileArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(a.Cfg.Profiles))
	for _, p := range a.Cfg.Profiles {
		names = append(names, p.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// AddNoHeadersFlag installs --no-headers on cmd.
func (a *App) AddNoHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.NoHeaderFlag, "no-headers", false, "Hide table headers")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	TabwriterMinWidth = 6
	TabwriterWidth    = 4
	TabwriterPadding  = 3
	TabwriterPadChar  = ' '
	TabwriterFlags    = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}

// ApplyProfile fills the format and input mode flags that were not set on
// the command line from the active profile.
func (a *App) ApplyProfile(cmd *cobra.Command, formatFlag string, format *Format, mode *InputMode) error {
	if format != nil && !cmd.Flags().Changed(formatFlag) {
		if err := format.Set(a.Profile.Output); err != nil {
			return fmt.Errorf("invalid output %q in profile: %w", a.Profile.Output, err)
		}
	}
	if mode != nil && !cmd.Flags().Changed("input-mode") {
		if err := mode.Set(a.Profile.InputMode); err != nil {
			return fmt.Errorf("invalid input-mode %q in profile: %w", a.Profile.InputMode, err)
		}
	}
	return nil
}

// AddInputFlags installs the flags shared by every command reading records.
func AddInputFlags(cmd *cobra.Command, mode *InputMode, lineLimit *int) {
	cmd.Flags().Var(mode, "input-mode", "Scanning input mode: line, full")
	cmd.Flags().IntVar(lineLimit, "line-length-limit", 0, "line length limit in line input mode")
	if err := cmd.RegisterFlagCompletionFunc("input-mode", CompleteInputMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
}
