package session

import (
	"path/filepath"

	"github.com/sprite-ai/revet/internal/model"
)

// Output filenames, one per tool that actually runs. Captured stdout is
// written verbatim; no schema is imposed here.
const (
	FileESLint     = "eslint-report.json"
	FileTSC        = "tsc-errors.txt"
	FilePylint     = "pylint-report.json"
	FileFlake8     = "flake8-report.json"
	FileMypy       = "mypy-report.txt"
	FileClippy     = "clippy-report.json"
	FileComplexity = "complexity-report.json"
	FileCodeSmells = "code-smells-report.json"
	FileReport     = "REVIEW.md"
)

// Bundled analyzer script names, resolved against cfg.ScriptDir.
const (
	scriptComplexity = "analyze_complexity.py"
	scriptCodeSmells = "detect_code_smells.py"
	scriptReport     = "generate_review_report.py"
)

// ecosystemTools returns the fixed, ordered tool list for the given
// ecosystem. The order is part of the contract: within JS/TS the linter
// runs before the type checker, and detection order never changes it.
func ecosystemTools(eco model.Ecosystem, cfg model.SessionConfig) []model.ToolSpec {
	switch eco {
	case model.EcosystemJSTS:
		return []model.ToolSpec{
			{
				Name:       "eslint",
				Ecosystem:  eco,
				Probe:      model.ProbeCommand,
				ProbeName:  "npx",
				Command:    "npx",
				Args:       []string{"eslint", ".", "--format", "json"},
				WorkDir:    cfg.TargetDir,
				OutputFile: FileESLint,
				Marker:     model.MarkerPackageJSON,
			},
			{
				Name:       "tsc",
				Ecosystem:  eco,
				Probe:      model.ProbeCommand,
				ProbeName:  "npx",
				Command:    "npx",
				Args:       []string{"tsc", "--noEmit", "--pretty", "false"},
				WorkDir:    cfg.TargetDir,
				OutputFile: FileTSC,
				Marker:     model.MarkerTSConfig,
			},
		}
	case model.EcosystemPython:
		return []model.ToolSpec{
			{
				Name:       "pylint",
				Ecosystem:  eco,
				Probe:      model.ProbeCommand,
				ProbeName:  "pylint",
				Command:    "pylint",
				Args:       []string{"--output-format=json", "--recursive=y", "."},
				WorkDir:    cfg.TargetDir,
				OutputFile: FilePylint,
			},
			{
				Name:       "flake8",
				Ecosystem:  eco,
				Probe:      model.ProbeCommand,
				ProbeName:  "flake8",
				Command:    "flake8",
				Args:       []string{"--format=json", "."},
				WorkDir:    cfg.TargetDir,
				OutputFile: FileFlake8,
			},
			{
				Name:       "mypy",
				Ecosystem:  eco,
				Probe:      model.ProbeCommand,
				ProbeName:  "mypy",
				Command:    "mypy",
				Args:       []string{"--no-color-output", "."},
				WorkDir:    cfg.TargetDir,
				OutputFile: FileMypy,
			},
		}
	case model.EcosystemRust:
		return []model.ToolSpec{
			{
				Name:       "clippy",
				Ecosystem:  eco,
				Probe:      model.ProbeCommand,
				ProbeName:  "cargo",
				Command:    "cargo",
				Args:       []string{"clippy", "--message-format=json"},
				WorkDir:    cfg.TargetDir,
				OutputFile: FileClippy,
				Marker:     model.MarkerCargoToml,
			},
		}
	default:
		return nil
	}
}

// customAnalyzers returns the two bundled analyzers, which run from the
// orchestrator's own script directory against the target and do not
// depend on ecosystem detection.
func customAnalyzers(cfg model.SessionConfig) []model.ToolSpec {
	complexity := filepath.Join(cfg.ScriptDir, scriptComplexity)
	smells := filepath.Join(cfg.ScriptDir, scriptCodeSmells)
	return []model.ToolSpec{
		{
			Name:       "complexity",
			Probe:      model.ProbeScript,
			ProbeName:  complexity,
			Command:    "python3",
			Args:       []string{complexity, cfg.TargetDir},
			WorkDir:    cfg.ScriptDir,
			OutputFile: FileComplexity,
		},
		{
			Name:       "code-smells",
			Probe:      model.ProbeScript,
			ProbeName:  smells,
			Command:    "python3",
			Args:       []string{smells, cfg.TargetDir},
			WorkDir:    cfg.ScriptDir,
			OutputFile: FileCodeSmells,
		},
	}
}

// reportSpec returns the external report generator invocation: the
// output directory is its only argument, its stdout becomes REVIEW.md.
func reportSpec(cfg model.SessionConfig) model.ToolSpec {
	script := filepath.Join(cfg.ScriptDir, scriptReport)
	return model.ToolSpec{
		Name:       "report",
		Probe:      model.ProbeScript,
		ProbeName:  script,
		Command:    "python3",
		Args:       []string{script, cfg.OutputDir},
		WorkDir:    cfg.ScriptDir,
		OutputFile: FileReport,
	}
}
