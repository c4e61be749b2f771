// Package session drives one end-to-end review: detection, tool
// invocations in a fixed order, summary extraction, and report
// dispatch. No stage failure ever aborts the session.
package session

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/sprite-ai/revet/internal/detect"
	"github.com/sprite-ai/revet/internal/invoke"
	"github.com/sprite-ai/revet/internal/model"
	"github.com/sprite-ai/revet/internal/summary"
)

// Runner executes review sessions. Execution is strictly sequential:
// one subprocess at a time, ecosystem blocks in a fixed order.
type Runner struct {
	cfg  model.SessionConfig
	exec *invoke.Executor
	sink model.Sink
}

// New creates a runner for the given config. Events go to sink; pass
// nil to discard them.
func New(cfg model.SessionConfig, sink model.Sink) *Runner {
	if sink == nil {
		sink = model.SinkFunc(func(model.Event) {})
	}
	return &Runner{
		cfg:  cfg,
		exec: invoke.New(cfg.ToolTimeout),
		sink: sink,
	}
}

// Run drives a full session and always returns a completed one. The
// only error condition surfaced is failure to create the output
// directory, since without it no stage can record anything.
func (r *Runner) Run(ctx context.Context) (*model.ReviewSession, error) {
	s := &model.ReviewSession{Config: r.cfg, State: model.StateInitialized}

	// Idempotent: re-running into an existing directory overwrites
	// prior same-named files.
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	s.State = model.StateDetectingEcosystems
	sig := detect.Scan(r.cfg.TargetDir)

	s.State = model.StateRunningTools
	for _, eco := range model.AllEcosystems() {
		if !sig.Active(eco) {
			// Absent signal skips the whole block: no probe, no
			// executor, no output file.
			continue
		}
		r.emit(model.Event{Kind: model.EventSection, Message: eco.String()})
		for _, spec := range ecosystemTools(eco, r.cfg) {
			if spec.Marker != "" && !sig.Has(spec.Marker) {
				continue
			}
			s.Invocations = append(s.Invocations, r.runTool(ctx, spec))
		}
	}

	s.State = model.StateRunningCustomAnalyzers
	r.emit(model.Event{Kind: model.EventSection, Message: "custom analyzers"})
	for _, spec := range customAnalyzers(r.cfg) {
		s.Invocations = append(s.Invocations, r.runTool(ctx, spec))
	}

	s.Summaries = summary.ExtractAll(s.Invocations)
	for i := range s.Summaries {
		r.emit(model.Event{Kind: model.EventSummary, Tool: s.Summaries[i].Tool, Summary: &s.Summaries[i]})
	}

	s.State = model.StateDispatching
	if !r.cfg.NoReport {
		r.dispatch(ctx, s)
	}

	s.State = model.StateCompleted
	r.emit(model.Event{Kind: model.EventCompleted, Message: summary.Describe(s.Summaries)})
	return s, nil
}

// runTool probes for the tool immediately before invoking it, so the
// check and the use cannot drift apart, then records the explicit
// outcome. Skips and failures are events, never errors.
func (r *Runner) runTool(ctx context.Context, spec model.ToolSpec) model.ToolInvocation {
	if slices.Contains(r.cfg.Skip, spec.Name) {
		inv := model.ToolInvocation{Tool: spec.Name, Status: model.StatusSkipped, Reason: "skipped by request"}
		r.emit(model.Event{Kind: model.EventSkip, Tool: spec.Name, Message: inv.Reason, Invocation: &inv})
		return inv
	}
	if !invoke.Available(spec) {
		inv := model.ToolInvocation{Tool: spec.Name, Status: model.StatusSkipped, Reason: "not available"}
		r.emit(model.Event{Kind: model.EventSkip, Tool: spec.Name, Message: inv.Reason, Invocation: &inv})
		return inv
	}

	r.emit(model.Event{Kind: model.EventToolStart, Tool: spec.Name})
	inv := r.exec.Run(ctx, spec, r.cfg.OutputDir)
	r.emit(model.Event{Kind: model.EventToolDone, Tool: spec.Name, Invocation: &inv})
	return inv
}

func (r *Runner) emit(ev model.Event) {
	r.sink.Event(ev)
}
