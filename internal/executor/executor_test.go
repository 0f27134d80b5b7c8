package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecuteCapturesStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	out, err := New().Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("got %q, want %q", out, "hello")
	}
}

func TestExecuteIncludesStderrInError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	_, err := New().Execute(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "oops") {
		t.Errorf("error should carry stderr output: %v", err)
	}
}

func TestExecuteMissingCommand(t *testing.T) {
	_, err := New().Execute(context.Background(), "definitely-not-a-real-command-12345")
	if err == nil {
		t.Fatal("expected error for missing command")
	}
}
