// Package invoke runs external tools as blocking subprocesses with
// captured output and isolated failure.
package invoke

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sprite-ai/revet/internal/model"
)

// Executor runs one tool at a time. Sessions are strictly sequential,
// so a single Executor never writes to the output directory
// concurrently.
type Executor struct {
	timeout time.Duration // 0 disables the per-tool deadline
}

// New creates an executor with the given per-tool timeout.
func New(timeout time.Duration) *Executor {
	return &Executor{timeout: timeout}
}

// Run executes spec to completion and returns its invocation record.
// The contract is fault isolation: a nonzero exit is recorded as a
// failed run with output retained, and a spawn error (tool vanished
// after the probe, permission denied) becomes a skip. Neither returns
// an error; nothing here may abort the session.
func (e *Executor) Run(ctx context.Context, spec model.ToolSpec, outputDir string) model.ToolInvocation {
	inv := model.ToolInvocation{Tool: spec.Name}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	inv.Duration = time.Since(start)

	if err != nil && cmd.ProcessState == nil {
		// The process never started (vanished after the probe,
		// permission error, bad workdir).
		inv.Status = model.StatusSkipped
		inv.Reason = "could not start: " + err.Error()
		return inv
	}

	outPath := filepath.Join(outputDir, spec.OutputFile)
	if writeErr := os.WriteFile(outPath, stdout.Bytes(), 0644); writeErr == nil {
		inv.OutputPath = outPath
	}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		inv.Status = model.StatusFailed
		inv.ExitCode = -1
		inv.Reason = "timed out after " + e.timeout.String()
	case err != nil:
		inv.Status = model.StatusFailed
		inv.ExitCode = cmd.ProcessState.ExitCode()
	default:
		inv.Status = model.StatusSucceeded
	}
	return inv
}
