package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	if buf.Len() != 0 {
		t.Errorf("expected no output below error level, got %q", buf.String())
	}
	log.Error("boom", "err", "x")
	if !strings.Contains(buf.String(), "level=ERROR msg=boom err=x") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("request", "method", "GET")
	if !strings.Contains(buf.String(), "level=DEBUG msg=request method=GET") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestOpenFile_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	for _, msg := range []string{"first", "second"} {
		log, closeFn, err := OpenFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		log.Debug(msg)
		if err := closeFn(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "msg=first") || !strings.Contains(string(data), "msg=second") {
		t.Errorf("expected both entries, got %q", data)
	}
}

func TestOpenFile_MissingDir(t *testing.T) {
	if _, _, err := OpenFile(filepath.Join(t.TempDir(), "nope", "app.log")); err == nil {
		t.Error("expected error for missing directory")
	}
}
