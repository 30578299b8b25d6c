package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It flips completion, so running it
// on a completed task reopens it.
type DoneCmd struct {
	filter string
}

// SetFilter sets the filter the reference is resolved against (for testing).
func (c *DoneCmd) SetFilter(f string) {
	c.filter = f
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string   { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string      { return "tasklist done [--filter <f>] <n>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	ctrl := newController(cfg, svc)
	task, code := resolveTask(ctx, ctrl, c.filter, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := ctrl.ToggleComplete(ctx, task.ID); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		updated, _ := ctrl.Find(task.ID)
		mark := output.MarkPending
		if updated.Completed {
			mark = output.MarkDone
		}
		fmt.Fprintf(out, "ok %s\n", mark)
	}
	return exitcode.Success
}
