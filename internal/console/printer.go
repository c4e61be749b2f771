// Package console renders the session transcript to a terminal. The
// transcript is the only error-visibility channel for the user, so
// every skip and failure shows up here.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/sprite-ai/revet/internal/model"
)

// Printer is a model.Sink that writes styled transcript lines.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Event renders one transcript event.
func (p *Printer) Event(ev model.Event) {
	switch ev.Kind {
	case model.EventSection:
		fmt.Fprintf(p.w, "\n%s\n", sectionStyle.Render("── "+ev.Message+" ──"))
	case model.EventToolStart:
		fmt.Fprintf(p.w, "  %s running...\n", toolStyle.Render(ev.Tool))
	case model.EventToolDone:
		p.toolDone(ev)
	case model.EventSkip:
		fmt.Fprintf(p.w, "  %s %s\n", toolStyle.Render(ev.Tool), skipStyle.Render("skipped ("+ev.Message+")"))
	case model.EventSummary:
		p.summaryLine(ev)
	case model.EventReport:
		p.report(ev.Message)
	case model.EventDegraded:
		fmt.Fprintf(p.w, "\n%s\n", degradedStyle.Render(ev.Message))
	case model.EventCompleted:
		fmt.Fprintf(p.w, "\n%s %s\n", doneStyle.Render("review complete:"), ev.Message)
	}
}

func (p *Printer) toolDone(ev model.Event) {
	inv := ev.Invocation
	if inv == nil {
		return
	}
	status := okStyle.Render("ok")
	if inv.Status == model.StatusFailed {
		status = failStyle.Render(fmt.Sprintf("exit %d", inv.ExitCode))
		if inv.Reason != "" {
			status = failStyle.Render(inv.Reason)
		}
	}
	fmt.Fprintf(p.w, "  %s %s %s\n",
		toolStyle.Render(ev.Tool), status, skipStyle.Render(inv.Duration.Round(time.Millisecond).String()))
}

func (p *Printer) summaryLine(ev model.Event) {
	fs := ev.Summary
	if fs == nil {
		return
	}
	if fs.Unparsable {
		fmt.Fprintf(p.w, "  %s %s\n", toolStyle.Render(fs.Tool), unparsableStyle.Render("output unparsable"))
		return
	}
	fmt.Fprintf(p.w, "  %s %s finding(s)\n", toolStyle.Render(fs.Tool), countStyle.Render(fmt.Sprintf("%d", fs.Count)))
}

// report echoes the head of the generated Markdown report with syntax
// highlighting, falling back to plain text when anything is missing.
func (p *Printer) report(head string) {
	if strings.TrimSpace(head) == "" {
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", sectionStyle.Render("── report ──"))

	lexer := lexers.Get("markdown")
	if lexer == nil {
		fmt.Fprintln(p.w, head)
		return
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, head)
	if err != nil {
		fmt.Fprintln(p.w, head)
		return
	}
	if err := formatter.Format(p.w, style, iterator); err != nil {
		fmt.Fprintln(p.w, head)
		return
	}
	fmt.Fprintln(p.w)
}
