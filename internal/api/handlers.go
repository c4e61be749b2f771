package api

import (
	"encoding/json"
	"net/http"

	"github.com/sprite-ai/revet/internal/model"
	"github.com/sprite-ai/revet/internal/session"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Review ---

type reviewRequest struct {
	TargetDir string   `json:"target_dir"`
	OutputDir string   `json:"output_dir,omitempty"`
	Skip      []string `json:"skip,omitempty"`
	NoReport  bool     `json:"no_report,omitempty"`
}

type reviewResponse struct {
	State       string           `json:"state"`
	Total       int              `json:"total_findings"`
	Invocations []invocationJSON `json:"invocations"`
	Summaries   []summaryJSON    `json:"summaries"`
}

type invocationJSON struct {
	Tool       string `json:"tool"`
	Status     string `json:"status"`
	ExitCode   int    `json:"exit_code,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Reason     string `json:"reason,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type summaryJSON struct {
	Tool       string `json:"tool"`
	Count      int    `json:"count"`
	Unparsable bool   `json:"unparsable,omitempty"`
}

// sessionConfig builds a per-request config on top of the server's
// base (script directory, timeout).
func (s *Server) sessionConfig(req reviewRequest) model.SessionConfig {
	cfg := s.base
	cfg.TargetDir = req.TargetDir
	cfg.OutputDir = req.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = ".review"
	}
	cfg.Skip = req.Skip
	cfg.NoReport = req.NoReport
	return cfg
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: %v", err)
		return
	}
	if req.TargetDir == "" {
		writeError(w, http.StatusBadRequest, "target_dir is required")
		return
	}

	runner := session.New(s.sessionConfig(req), nil)
	result, err := runner.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session failed to start: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

func toResponse(result *model.ReviewSession) reviewResponse {
	resp := reviewResponse{
		State: result.State.String(),
		Total: result.TotalFindings(),
	}
	for _, inv := range result.Invocations {
		resp.Invocations = append(resp.Invocations, invocationJSON{
			Tool:       inv.Tool,
			Status:     inv.Status.String(),
			ExitCode:   inv.ExitCode,
			OutputPath: inv.OutputPath,
			Reason:     inv.Reason,
			DurationMS: inv.Duration.Milliseconds(),
		})
	}
	for _, fs := range result.Summaries {
		resp.Summaries = append(resp.Summaries, summaryJSON{
			Tool:       fs.Tool,
			Count:      fs.Count,
			Unparsable: fs.Unparsable,
		})
	}
	return resp
}
