package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/revet/internal/api"
	"github.com/sprite-ai/revet/internal/model"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the revet orchestrator.

Endpoints:
  GET  /health       — Health check
  POST /api/review   — Run a review session, respond with summaries
  GET  /api/ws       — WebSocket streaming transcript events live`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6143, "port to listen on")
	serveCmd.Flags().Duration("tool-timeout", 5*time.Minute, "per-tool timeout (0 disables)")
	serveCmd.Flags().String("scripts", "", "directory containing the bundled analyzer scripts")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")
	timeout, _ := cmd.Flags().GetDuration("tool-timeout")
	scripts, _ := cmd.Flags().GetString("scripts")
	if scripts == "" {
		scripts = defaultScriptDir()
	}

	base := model.SessionConfig{
		ScriptDir:   scripts,
		ToolTimeout: timeout,
	}

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, base)
	return srv.ListenAndServe()
}
