package invoke

import (
	"os"
	"os/exec"

	"github.com/sprite-ai/revet/internal/model"
)

// Available reports whether the tool described by spec can be invoked
// in the current environment. Pure query, no side effects; called
// immediately before each invocation so the check and the use cannot
// drift apart.
func Available(spec model.ToolSpec) bool {
	switch spec.Probe {
	case model.ProbeScript:
		info, err := os.Stat(spec.ProbeName)
		return err == nil && !info.IsDir()
	default:
		_, err := exec.LookPath(spec.ProbeName)
		return err == nil
	}
}
