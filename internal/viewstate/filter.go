package viewstate

import (
	"fmt"
	"strings"

	"tasklist/internal/service"
)

// Filter selects which tasks are visible.
type Filter int

const (
	All Filter = iota
	Completed
	Pending
)

// Filters lists the permitted filter values in display order.
var Filters = []Filter{All, Completed, Pending}

func (f Filter) String() string {
	switch f {
	case All:
		return "All"
	case Completed:
		return "Completed"
	case Pending:
		return "Pending"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Valid reports whether f is one of the permitted values.
func (f Filter) Valid() bool {
	return f == All || f == Completed || f == Pending
}

// Match reports whether t is visible under f.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case Completed:
		return t.Completed
	case Pending:
		return !t.Completed
	default:
		return true
	}
}

// ParseFilter parses a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "completed", "done":
		return Completed, nil
	case "pending", "open":
		return Pending, nil
	}
	return All, fmt.Errorf("invalid filter: %s", s)
}

// Visible returns the tasks matching f, preserving order.
// The result never aliases tasks.
func Visible(tasks []service.Task, f Filter) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
