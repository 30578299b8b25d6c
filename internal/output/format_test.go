package output

import (
	"bytes"
	"testing"

	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

func TestFormatTasks_Golden(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Write report", Completed: true},
		{ID: "3", Title: "line one\nline two"},
		{ID: "4", Title: "   "},
	}
	var buf bytes.Buffer
	FormatTasks(&buf, tasks)
	testutil.Golden(t, "tasks", buf.Bytes())
}

func TestFormatTask_WideNumbers(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 12345, service.Task{Title: "x"})
	if got, want := buf.String(), "12345  [ ] x\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatTheme(t *testing.T) {
	var buf bytes.Buffer
	FormatTheme(&buf, true)
	FormatTheme(&buf, false)
	if got, want := buf.String(), "dark\nlight\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"", "(untitled)"},
		{" \t", "(untitled)"},
		{"a\r\nb", "a  b"},
	}
	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
