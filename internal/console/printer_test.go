package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sprite-ai/revet/internal/model"
)

func TestPrinterTranscript(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	inv := model.ToolInvocation{Tool: "eslint", Status: model.StatusSucceeded, Duration: 120 * time.Millisecond}
	failed := model.ToolInvocation{Tool: "pylint", Status: model.StatusFailed, ExitCode: 2}
	clean := model.FindingSummary{Tool: "eslint", Count: 3}
	bad := model.FindingSummary{Tool: "pylint", Unparsable: true}

	p.Event(model.Event{Kind: model.EventSection, Message: "javascript/typescript"})
	p.Event(model.Event{Kind: model.EventToolStart, Tool: "eslint"})
	p.Event(model.Event{Kind: model.EventToolDone, Tool: "eslint", Invocation: &inv})
	p.Event(model.Event{Kind: model.EventToolDone, Tool: "pylint", Invocation: &failed})
	p.Event(model.Event{Kind: model.EventSkip, Tool: "clippy", Message: "not available"})
	p.Event(model.Event{Kind: model.EventSummary, Tool: "eslint", Summary: &clean})
	p.Event(model.Event{Kind: model.EventSummary, Tool: "pylint", Summary: &bad})
	p.Event(model.Event{Kind: model.EventDegraded, Message: "report generator not found"})
	p.Event(model.Event{Kind: model.EventCompleted, Message: "eslint: 3"})

	out := buf.String()
	for _, want := range []string{
		"javascript/typescript",
		"eslint",
		"exit 2",
		"skipped (not available)",
		"3 finding(s)",
		"output unparsable",
		"report generator not found",
		"review complete:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("transcript missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterReportEcho(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Event(model.Event{Kind: model.EventReport, Message: "# Code Review Report\n\n- eslint: 3\n"})

	out := buf.String()
	if !strings.Contains(out, "── report ──") {
		t.Errorf("report section header missing:\n%s", out)
	}
	if len(out) < len("── report ──") {
		t.Error("highlighted report body missing")
	}
}

func TestPrinterEmptyReportIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Event(model.Event{Kind: model.EventReport, Message: "   \n"})

	if buf.Len() != 0 {
		t.Errorf("empty report should print nothing, got %q", buf.String())
	}
}

func TestPrinterIgnoresNilPayloads(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Event(model.Event{Kind: model.EventToolDone, Tool: "eslint"})
	p.Event(model.Event{Kind: model.EventSummary, Tool: "eslint"})

	if buf.Len() != 0 {
		t.Errorf("events without payloads should print nothing, got %q", buf.String())
	}
}
