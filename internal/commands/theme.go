package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/prefs"
	"tasklist/internal/service"
	"tasklist/internal/viewstate"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd shows or changes the persisted colour theme.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string       { return "theme" }
func (c *ThemeCmd) Aliases() []string  { return nil }
func (c *ThemeCmd) Synopsis() string   { return "Show or set the colour theme" }
func (c *ThemeCmd) Usage() string      { return "tasklist theme [dark|light|toggle]" }
func (c *ThemeCmd) NeedsBackend() bool { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	store, err := prefs.Open(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer store.Close()

	ctrl := viewstate.New(svc, store, viewstate.WithLogger(cfg.Logger))

	if len(args) == 0 {
		output.FormatTheme(out, ctrl.DarkMode())
		return exitcode.Success
	}

	switch args[0] {
	case "dark":
		err = ctrl.SetDarkMode(true)
	case "light":
		err = ctrl.SetDarkMode(false)
	case "toggle":
		err = ctrl.ToggleDarkMode()
	default:
		fmt.Fprintf(errOut, "error: invalid theme: %s\n", args[0])
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		output.FormatTheme(out, ctrl.DarkMode())
	}
	return exitcode.Success
}
