// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
)

// Checkbox markers for completed and pending tasks.
const (
	MarkDone    = "[x]"
	MarkPending = "[ ]"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  {MARK} {TITLE}\n" (4-wide right-aligned number, two spaces,
// checkbox, title)
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := MarkPending
	if task.Completed {
		mark = MarkDone
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, mark, normalizeTitle(task.Title))
}

// FormatTasks formats tasks numbered from 1.
func FormatTasks(w io.Writer, tasks []service.Task) {
	for i, t := range tasks {
		FormatTask(w, i+1, t)
	}
}

// FormatTheme formats the theme preference.
func FormatTheme(w io.Writer, dark bool) {
	if dark {
		fmt.Fprintln(w, "dark")
		return
	}
	fmt.Fprintln(w, "light")
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
