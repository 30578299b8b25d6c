package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/viewstate"
)

// ErrOutOfRange reports a task number that does not name a listed task.
var ErrOutOfRange = errors.New("task number out of range")

func newController(cfg *config.Config, svc service.Service) *viewstate.Controller {
	return viewstate.New(svc, nil, viewstate.WithLogger(cfg.Logger))
}

// lookupTask returns the num'th (1-based) visible task.
func lookupTask(ctrl *viewstate.Controller, num int) (service.Task, error) {
	visible := ctrl.VisibleTasks()
	if num < 1 || num > len(visible) {
		return service.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, num)
	}
	return visible[num-1], nil
}

// resolveTask parses the reference in args, loads the view and looks the task up.
// On failure it reports to errOut and returns the exit code to use.
func resolveTask(ctx context.Context, ctrl *viewstate.Controller, filter string, args []string, errOut io.Writer) (service.Task, int) {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	if code := loadView(ctx, ctrl, filter, errOut); code != exitcode.Success {
		return service.Task{}, code
	}
	task, err := lookupTask(ctrl, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}

// loadView fetches the task list into ctrl and selects the view named by filter.
// On failure it reports to errOut and returns the exit code to use.
func loadView(ctx context.Context, ctrl *viewstate.Controller, filter string, errOut io.Writer) int {
	f, err := viewstate.ParseFilter(filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := ctrl.Load(ctx); err != nil {
		return backendFailure(errOut, err)
	}
	if err := ctrl.SetFilter(f); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

func backendFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
