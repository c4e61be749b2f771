package session

import (
	"context"
	"os"
	"strings"

	"github.com/sprite-ai/revet/internal/invoke"
	"github.com/sprite-ai/revet/internal/model"
)

// reportHeadLines bounds how much of REVIEW.md is echoed back to the
// console after dispatch.
const reportHeadLines = 40

// dispatch hands the output directory to the external report generator.
// Absence of the generator is degraded mode, not an error: the raw
// per-tool files stay in place and the session still completes.
func (r *Runner) dispatch(ctx context.Context, s *model.ReviewSession) {
	spec := reportSpec(r.cfg)

	if !invoke.Available(spec) {
		r.emit(model.Event{
			Kind:    model.EventDegraded,
			Message: "report generator not found; raw results only in " + r.cfg.OutputDir,
		})
		return
	}

	inv := r.exec.Run(ctx, spec, r.cfg.OutputDir)
	s.Invocations = append(s.Invocations, inv)

	if inv.Status != model.StatusSucceeded || inv.OutputPath == "" {
		r.emit(model.Event{
			Kind:    model.EventDegraded,
			Message: "report generation failed; raw results only in " + r.cfg.OutputDir,
		})
		return
	}

	r.emit(model.Event{Kind: model.EventReport, Message: reportHead(inv.OutputPath)})
}

// reportHead returns the first portion of the generated report.
func reportHead(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > reportHeadLines {
		lines = lines[:reportHeadLines]
	}
	return strings.Join(lines, "\n")
}
