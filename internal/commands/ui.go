package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/prefs"
	"tasklist/internal/service"
	"tasklist/internal/tui"
	"tasklist/internal/viewstate"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive terminal UI.
type UICmd struct {
	run func(context.Context, *viewstate.Controller) error
}

// SetRunner replaces the interactive program (for testing).
func (c *UICmd) SetRunner(fn func(context.Context, *viewstate.Controller) error) {
	c.run = fn
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Start the interactive UI" }
func (c *UICmd) Usage() string      { return "tasklist ui" }
func (c *UICmd) NeedsBackend() bool { return true }
func (c *UICmd) OwnsTerminal() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	store, err := prefs.Open(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer store.Close()

	ctrl := viewstate.New(svc, store,
		viewstate.WithLogger(cfg.Logger),
		viewstate.WithThemeHook(tui.ApplyTheme),
	)

	run := c.run
	if run == nil {
		run = tui.Run
	}
	if err := run(ctx, ctrl); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
