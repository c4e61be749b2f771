// Package model defines the core data types shared across revet.
package model

import "time"

// Ecosystem identifies a recognized language/tooling stack.
type Ecosystem int

const (
	EcosystemJSTS Ecosystem = iota
	EcosystemPython
	EcosystemRust
)

func (e Ecosystem) String() string {
	switch e {
	case EcosystemJSTS:
		return "javascript/typescript"
	case EcosystemPython:
		return "python"
	case EcosystemRust:
		return "rust"
	default:
		return "unknown"
	}
}

// AllEcosystems returns ecosystems in their fixed execution order.
func AllEcosystems() []Ecosystem {
	return []Ecosystem{EcosystemJSTS, EcosystemPython, EcosystemRust}
}

// Marker filenames whose top-level presence signals an ecosystem.
const (
	MarkerPackageJSON  = "package.json"
	MarkerTSConfig     = "tsconfig.json"
	MarkerRequirements = "requirements.txt"
	MarkerPyProject    = "pyproject.toml"
	MarkerSetupPy      = "setup.py"
	MarkerCargoToml    = "Cargo.toml"
)

// ProbeKind selects how a tool's availability is checked.
type ProbeKind int

const (
	// ProbeCommand looks the tool up on PATH.
	ProbeCommand ProbeKind = iota
	// ProbeScript stats a file path (bundled analyzer scripts).
	ProbeScript
)

// ToolSpec describes one external tool: how to probe for it, how to
// invoke it, and where its captured stdout lands. Specs are fixed at
// build time; a session never mutates them.
type ToolSpec struct {
	Name       string
	Ecosystem  Ecosystem
	Probe      ProbeKind
	ProbeName  string // executable name or script path
	Command    string
	Args       []string
	WorkDir    string // working directory for the subprocess
	OutputFile string // filename inside the output directory
	Marker     string // required marker filename, empty = any ecosystem marker
}

// InvocationStatus is the explicit outcome of one tool invocation.
// Failure never propagates as an error; it is recorded here and the
// session moves on.
type InvocationStatus int

const (
	StatusSkipped InvocationStatus = iota
	StatusFailed
	StatusSucceeded
)

func (s InvocationStatus) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusSucceeded:
		return "ok"
	default:
		return "unknown"
	}
}

// ToolInvocation is the runtime record of one ToolSpec execution.
// Immutable once the subprocess exits.
type ToolInvocation struct {
	Tool       string
	Status     InvocationStatus
	ExitCode   int
	OutputPath string // captured stdout file, empty if nothing ran
	Reason     string // skip reason or failure detail
	Duration   time.Duration
}

// Ran reports whether the underlying subprocess actually executed.
func (ti ToolInvocation) Ran() bool {
	return ti.Status != StatusSkipped
}

// FindingSummary is a best-effort numeric count extracted from one
// captured output file. Unparsable distinguishes "the scan failed" from
// a genuinely clean result; the count is 0 in both cases.
type FindingSummary struct {
	Tool       string
	Count      int
	Unparsable bool
}

// SessionConfig carries everything a session needs, constructed once at
// entry. No ambient state.
type SessionConfig struct {
	TargetDir   string
	OutputDir   string
	ScriptDir   string        // location of the bundled analyzer scripts
	ToolTimeout time.Duration // 0 disables the per-tool timeout
	Skip        []string      // tool names to skip, order untouched
	NoReport    bool          // suppress the report dispatcher
}

// SessionState tracks session progress. There is no failed state: every
// path reaches StateCompleted, only the output richness varies.
type SessionState int

const (
	StateInitialized SessionState = iota
	StateDetectingEcosystems
	StateRunningTools
	StateRunningCustomAnalyzers
	StateDispatching
	StateCompleted
)

func (s SessionState) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateDetectingEcosystems:
		return "detecting"
	case StateRunningTools:
		return "running-tools"
	case StateRunningCustomAnalyzers:
		return "running-analyzers"
	case StateDispatching:
		return "dispatching"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ReviewSession is the top-level container for one orchestrator run.
type ReviewSession struct {
	Config      SessionConfig
	State       SessionState
	Invocations []ToolInvocation
	Summaries   []FindingSummary
}

// TotalFindings sums all summary counts.
func (s *ReviewSession) TotalFindings() int {
	total := 0
	for _, fs := range s.Summaries {
		total += fs.Count
	}
	return total
}

// EventKind categorizes a transcript event.
type EventKind int

const (
	EventSection EventKind = iota
	EventToolStart
	EventToolDone
	EventSkip
	EventSummary
	EventReport
	EventDegraded
	EventCompleted
)

// Event is one line of session transcript, consumed by the console
// printer and the WebSocket stream.
type Event struct {
	Kind       EventKind
	Message    string
	Tool       string
	Invocation *ToolInvocation
	Summary    *FindingSummary
}

// Sink receives transcript events as the session runs.
type Sink interface {
	Event(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

func (f SinkFunc) Event(ev Event) { f(ev) }
