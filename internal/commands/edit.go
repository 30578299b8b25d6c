package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	filter string
}

// SetFilter sets the filter the reference is resolved against (for testing).
func (c *EditCmd) SetFilter(f string) {
	c.filter = f
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title" }
func (c *EditCmd) Usage() string      { return "tasklist edit [--filter <f>] <n> <title...>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		title := strings.Join(args[1:], " ")
		if strings.TrimSpace(title) == "" {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
	}

	ctrl := newController(cfg, svc)
	task, code := resolveTask(ctx, ctrl, c.filter, args, errOut)
	if code != exitcode.Success {
		return code
	}

	ctrl.BeginEdit(task.ID, task.Title)
	ctrl.SetEditText(strings.Join(args[1:], " "))
	if err := ctrl.SaveEdit(ctx); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
