package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sprite-ai/revet/internal/model"
	"github.com/sprite-ai/revet/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgReview = "review"
)

// WebSocket message types to client.
const (
	wsMsgEvent     = "event"
	wsMsgCompleted = "completed"
	wsMsgError     = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsEvent is one transcript event streamed to the client.
type wsEvent struct {
	Kind       string          `json:"kind"`
	Tool       string          `json:"tool,omitempty"`
	Message    string          `json:"message,omitempty"`
	Invocation *invocationJSON `json:"invocation,omitempty"`
	Summary    *summaryJSON    `json:"summary,omitempty"`
}

// handleWebSocket accepts a single review request and streams the
// session transcript while the tools run. The session itself is
// synchronous in this handler, so writes never interleave.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		return
	}
	if msg.Type != wsMsgReview {
		wsSendError(conn, "expected a review message")
		return
	}

	var req reviewRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		wsSendError(conn, "invalid review request: "+err.Error())
		return
	}
	if req.TargetDir == "" {
		wsSendError(conn, "target_dir is required")
		return
	}

	sink := model.SinkFunc(func(ev model.Event) {
		wsSendEvent(conn, ev)
	})

	runner := session.New(s.sessionConfig(req), sink)
	result, err := runner.Run(r.Context())
	if err != nil {
		wsSendError(conn, "session failed to start: "+err.Error())
		return
	}

	wsSend(conn, wsMsgCompleted, toResponse(result))
}

func eventKindString(k model.EventKind) string {
	switch k {
	case model.EventSection:
		return "section"
	case model.EventToolStart:
		return "tool_start"
	case model.EventToolDone:
		return "tool_done"
	case model.EventSkip:
		return "skip"
	case model.EventSummary:
		return "summary"
	case model.EventReport:
		return "report"
	case model.EventDegraded:
		return "degraded"
	case model.EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func wsSendEvent(conn *websocket.Conn, ev model.Event) {
	out := wsEvent{
		Kind:    eventKindString(ev.Kind),
		Tool:    ev.Tool,
		Message: ev.Message,
	}
	if ev.Invocation != nil {
		out.Invocation = &invocationJSON{
			Tool:       ev.Invocation.Tool,
			Status:     ev.Invocation.Status.String(),
			ExitCode:   ev.Invocation.ExitCode,
			OutputPath: ev.Invocation.OutputPath,
			Reason:     ev.Invocation.Reason,
			DurationMS: ev.Invocation.Duration.Milliseconds(),
		}
	}
	if ev.Summary != nil {
		out.Summary = &summaryJSON{
			Tool:       ev.Summary.Tool,
			Count:      ev.Summary.Count,
			Unparsable: ev.Summary.Unparsable,
		}
	}
	wsSend(conn, wsMsgEvent, out)
}

func wsSend(conn *websocket.Conn, msgType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("websocket encode: %v", err)
		return
	}
	if err := conn.WriteJSON(wsMessage{Type: msgType, Data: data}); err != nil {
		log.Printf("websocket write: %v", err)
	}
}

func wsSendError(conn *websocket.Conn, msg string) {
	wsSend(conn, wsMsgError, map[string]string{"error": msg})
}
