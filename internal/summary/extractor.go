// Package summary extracts best-effort finding counts from captured
// tool output.
package summary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sprite-ai/revet/internal/model"
)

// scanner turns one tool's captured stdout into a finding count.
type scanner func(data []byte) (int, error)

// scanners maps tool names to their output heuristics. Tools with JSON
// output get a structured count; free-text tools get a line scan.
var scanners = map[string]scanner{
	"eslint":      scanESLint,
	"tsc":         scanTSC,
	"pylint":      scanPylint,
	"flake8":      scanFlake8,
	"mypy":        scanMypy,
	"clippy":      scanClippy,
	"complexity":  scanComplexity,
	"code-smells": scanCodeSmells,
}

// Extract derives a FindingSummary from one invocation's captured
// output. An absent file (tool skipped) is a clean zero; a present but
// unscannable file is zero with Unparsable set, so callers can tell a
// parser failure from a clean run.
func Extract(inv model.ToolInvocation) model.FindingSummary {
	fs := model.FindingSummary{Tool: inv.Tool}

	if inv.OutputPath == "" {
		return fs
	}
	data, err := os.ReadFile(inv.OutputPath)
	if err != nil {
		return fs
	}

	scan, ok := scanners[inv.Tool]
	if !ok {
		scan = scanLineCount
	}

	count, err := scan(data)
	if err != nil {
		fs.Unparsable = true
		return fs
	}
	fs.Count = count
	return fs
}

// ExtractAll summarizes every invocation that produced output, in
// invocation order.
func ExtractAll(invs []model.ToolInvocation) []model.FindingSummary {
	summaries := make([]model.FindingSummary, 0, len(invs))
	for _, inv := range invs {
		if !inv.Ran() {
			continue
		}
		summaries = append(summaries, Extract(inv))
	}
	return summaries
}

// Describe renders a one-line summary of all counts, e.g.
// "eslint: 3, tsc: 0, complexity: 2 (unparsable: pylint)".
func Describe(summaries []model.FindingSummary) string {
	if len(summaries) == 0 {
		return "no tool output captured"
	}
	var parts, bad []string
	for _, fs := range summaries {
		if fs.Unparsable {
			bad = append(bad, fs.Tool)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d", fs.Tool, fs.Count))
	}
	line := strings.Join(parts, ", ")
	if len(bad) > 0 {
		if line != "" {
			line += " "
		}
		line += "(unparsable: " + strings.Join(bad, ", ") + ")"
	}
	return line
}

// --- Structured scans ---

// scanESLint sums errorCount+warningCount across the per-file entries
// of eslint's JSON formatter output.
func scanESLint(data []byte) (int, error) {
	var files []struct {
		ErrorCount   int `json:"errorCount"`
		WarningCount int `json:"warningCount"`
	}
	if err := json.Unmarshal(data, &files); err != nil {
		return 0, err
	}
	total := 0
	for _, f := range files {
		total += f.ErrorCount + f.WarningCount
	}
	return total, nil
}

// scanPylint counts the diagnostics in pylint's JSON array output.
func scanPylint(data []byte) (int, error) {
	var diags []json.RawMessage
	if err := json.Unmarshal(data, &diags); err != nil {
		return 0, err
	}
	return len(diags), nil
}

// scanFlake8 sums per-file diagnostic arrays from flake8's JSON
// formatter (a filename → diagnostics object).
func scanFlake8(data []byte) (int, error) {
	var byFile map[string][]json.RawMessage
	if err := json.Unmarshal(data, &byFile); err != nil {
		return 0, err
	}
	total := 0
	for _, diags := range byFile {
		total += len(diags)
	}
	return total, nil
}

// scanClippy counts compiler-message records at warning or error level
// in cargo's JSON-lines output. Non-JSON lines are tolerated; an output
// with no valid records at all is unparsable.
func scanClippy(data []byte) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	count := 0
	valid := false
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec struct {
			Reason  string `json:"reason"`
			Message struct {
				Level string `json:"level"`
			} `json:"message"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		valid = true
		if rec.Reason == "compiler-message" &&
			(rec.Message.Level == "warning" || rec.Message.Level == "error") {
			count++
		}
	}
	if !valid {
		return 0, fmt.Errorf("no cargo JSON records found")
	}
	return count, nil
}

// scanComplexity counts the analyzer's problematic functions.
func scanComplexity(data []byte) (int, error) {
	var report struct {
		Problematic []json.RawMessage `json:"problematic_functions"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return 0, err
	}
	return len(report.Problematic), nil
}

// scanCodeSmells reads the detector's total_issues field.
func scanCodeSmells(data []byte) (int, error) {
	var report struct {
		TotalIssues *int `json:"total_issues"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return 0, err
	}
	if report.TotalIssues == nil {
		return 0, fmt.Errorf("missing total_issues")
	}
	return *report.TotalIssues, nil
}

// --- Free-text scans ---

// scanTSC counts "error TS" diagnostics in tsc output.
func scanTSC(data []byte) (int, error) {
	return countLines(data, "error TS"), nil
}

// scanMypy counts ": error:" diagnostics in mypy output.
func scanMypy(data []byte) (int, error) {
	return countLines(data, ": error:"), nil
}

// scanLineCount is the fallback for unknown tools: every nonempty line
// is a finding.
func scanLineCount(data []byte) (int, error) {
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count, nil
}

func countLines(data []byte, substr string) int {
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, substr) {
			count++
		}
	}
	return count
}
