package invoke

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sprite-ai/revet/internal/model"
)

func TestRunCapturesStdout(t *testing.T) {
	outDir := t.TempDir()
	spec := model.ToolSpec{
		Name:       "echoer",
		Probe:      model.ProbeCommand,
		ProbeName:  "sh",
		Command:    "sh",
		Args:       []string{"-c", "echo hello from tool"},
		WorkDir:    t.TempDir(),
		OutputFile: "echoer.txt",
	}

	inv := New(0).Run(context.Background(), spec, outDir)

	if inv.Status != model.StatusSucceeded {
		t.Fatalf("expected success, got %s (%s)", inv.Status, inv.Reason)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "echoer.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "hello from tool" {
		t.Errorf("unexpected captured output: %q", data)
	}
}

func TestRunNonzeroExitIsNotAnError(t *testing.T) {
	outDir := t.TempDir()
	spec := model.ToolSpec{
		Name:       "failer",
		Command:    "sh",
		Args:       []string{"-c", "echo partial output; exit 3"},
		WorkDir:    t.TempDir(),
		OutputFile: "failer.txt",
	}

	inv := New(0).Run(context.Background(), spec, outDir)

	if inv.Status != model.StatusFailed {
		t.Fatalf("expected failed, got %s", inv.Status)
	}
	if inv.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", inv.ExitCode)
	}
	// Output produced before the failure is retained.
	data, err := os.ReadFile(inv.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "partial output") {
		t.Errorf("partial output not retained: %q", data)
	}
}

func TestRunSpawnFailureBecomesSkip(t *testing.T) {
	outDir := t.TempDir()
	spec := model.ToolSpec{
		Name:       "ghost",
		Command:    "definitely-not-a-real-binary-xyz",
		WorkDir:    t.TempDir(),
		OutputFile: "ghost.txt",
	}

	inv := New(0).Run(context.Background(), spec, outDir)

	if inv.Status != model.StatusSkipped {
		t.Fatalf("expected skip, got %s", inv.Status)
	}
	if inv.Reason == "" {
		t.Error("skip reason should be populated")
	}
	if _, err := os.Stat(filepath.Join(outDir, "ghost.txt")); !os.IsNotExist(err) {
		t.Error("no output file should exist for a tool that never started")
	}
}

func TestRunTimeout(t *testing.T) {
	outDir := t.TempDir()
	spec := model.ToolSpec{
		Name:       "sleeper",
		Command:    "sh",
		Args:       []string{"-c", "sleep 5"},
		WorkDir:    t.TempDir(),
		OutputFile: "sleeper.txt",
	}

	start := time.Now()
	inv := New(100 * time.Millisecond).Run(context.Background(), spec, outDir)

	if time.Since(start) > 3*time.Second {
		t.Fatal("timeout did not bound the subprocess")
	}
	if inv.Status != model.StatusFailed {
		t.Fatalf("expected failed after timeout, got %s", inv.Status)
	}
	if !strings.Contains(inv.Reason, "timed out") {
		t.Errorf("expected a timeout reason, got %q", inv.Reason)
	}
}

func TestAvailableCommand(t *testing.T) {
	if !Available(model.ToolSpec{Probe: model.ProbeCommand, ProbeName: "sh"}) {
		t.Error("sh should be available")
	}
	if Available(model.ToolSpec{Probe: model.ProbeCommand, ProbeName: "definitely-not-a-real-binary-xyz"}) {
		t.Error("nonexistent command should not be available")
	}
}

func TestAvailableScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "analyze.py")
	if err := os.WriteFile(script, []byte("print('ok')"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Available(model.ToolSpec{Probe: model.ProbeScript, ProbeName: script}) {
		t.Error("existing script should be available")
	}
	if Available(model.ToolSpec{Probe: model.ProbeScript, ProbeName: filepath.Join(dir, "missing.py")}) {
		t.Error("missing script should not be available")
	}
	if Available(model.ToolSpec{Probe: model.ProbeScript, ProbeName: dir}) {
		t.Error("a directory is not a runnable script")
	}
}
