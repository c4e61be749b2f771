// Package cli wires the revet commands together.
package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/revet/internal/console"
	"github.com/sprite-ai/revet/internal/model"
	"github.com/sprite-ai/revet/internal/session"
)

// defaultOutputDir is the hidden subdirectory results land in when no
// output directory is given.
const defaultOutputDir = ".review"

var rootCmd = &cobra.Command{
	Use:   "revet [target_dir] [output_dir]",
	Short: "Run a multi-ecosystem code review session",
	Long: `Inspect a target directory, run the linters and analyzers for every
ecosystem found there, and synthesize a unified review report.

Tool failures never abort the session and never change the exit code:
revet always produces whatever report it can and exits 0.

Examples:
  revet                      # review . into .review/
  revet ./svc                # review ./svc into .review/
  revet ./svc /tmp/review    # explicit output directory
  revet --skip mypy,clippy   # suppress specific tools`,
	Args:          cobra.MaximumNArgs(2),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().Duration("tool-timeout", 5*time.Minute, "per-tool timeout (0 disables)")
	rootCmd.Flags().StringSlice("skip", nil, "tool names to skip")
	rootCmd.Flags().Bool("no-report", false, "skip the final report generator")
	rootCmd.Flags().String("scripts", "", "directory containing the bundled analyzer scripts")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	targetDir := "."
	outputDir := defaultOutputDir
	if len(args) > 0 {
		targetDir = args[0]
	}
	if len(args) > 1 {
		outputDir = args[1]
	}

	timeout, _ := cmd.Flags().GetDuration("tool-timeout")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	noReport, _ := cmd.Flags().GetBool("no-report")
	scripts, _ := cmd.Flags().GetString("scripts")
	if scripts == "" {
		scripts = defaultScriptDir()
	}

	cfg := model.SessionConfig{
		TargetDir:   targetDir,
		OutputDir:   outputDir,
		ScriptDir:   scripts,
		ToolTimeout: timeout,
		Skip:        skip,
		NoReport:    noReport,
	}

	runner := session.New(cfg, console.NewPrinter(os.Stdout))
	_, err := runner.Run(cmd.Context())
	return err
}

// defaultScriptDir locates the bundled analyzer scripts next to the
// revet binary.
func defaultScriptDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "scripts"
	}
	return filepath.Join(filepath.Dir(exe), "scripts")
}
