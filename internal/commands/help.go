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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasklist help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	writeCommandSummary(out, DefaultRegistry)
	return exitcode.Success
}

// writeCommandSummary lists every registered command with its aliases.
func writeCommandSummary(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range r.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %-20s %s\n", name, cmd.Synopsis())
	}
}

const helpText = `Usage:
  tasklist                                         List all tasks
  tasklist list [common flags] [--filter <f>]      List tasks (all, completed, pending)
  tasklist add [common flags] <title...>
  tasklist create [common flags] <title...>
  tasklist done [common flags] [--filter <f>] <n>  Toggle completion of task n
  tasklist edit [common flags] [--filter <f>] <n> <title...>
  tasklist rm [common flags] [--filter <f>] <n>
  tasklist theme [common flags] [dark|light|toggle]
  tasklist ui [common flags]                       Interactive mode
  tasklist help
  tasklist version

Task numbers refer to the order shown by list with the same --filter.

Common flags:
  --config <dir>   Override config directory
  --url <url>      Override the task store URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr (ui: to tasklist.log)

Environment:
  TASKLIST_URL       Task store URL (default http://127.0.0.1:8000/api/todos/)
  TASKLIST_TIMEOUT   Per-request timeout, e.g. 10s (default none)
  TASKLIST_PREFS     Preference store: file or sqlite (default file)
`
