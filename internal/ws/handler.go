package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pagelens/backend/internal/audit"
	"github.com/pagelens/backend/internal/audit/report"
	"github.com/pagelens/backend/internal/infrastructure/monitoring"
	"github.com/pagelens/backend/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced at the HTTP layer
	},
}

// Message is the client-to-server frame.
type Message struct {
	Type   string `json:"type"`
	Markup string `json:"markup,omitempty"`
	Source string `json:"source,omitempty"`
}

// Handler manages WebSocket connections.
type Handler struct {
	engine  *audit.Engine
	metrics *monitoring.Metrics
	log     *logging.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(engine *audit.Engine, metrics *monitoring.Metrics, log *logging.Logger) *Handler {
	return &Handler{
		engine:  engine,
		metrics: metrics,
		log:     log.Named("ws"),
	}
}

// HandleConnection handles WebSocket upgrade and messages.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	// Writes can come from the progress callback mid-run.
	var writeMu sync.Mutex
	send := func(payload interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(payload)
	}

	send(map[string]interface{}{
		"type":    "system",
		"message": "connected to pagelens audit stream",
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("websocket read ended", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "audit":
			h.handleAudit(send, msg)
		case "ping":
			send(map[string]interface{}{"type": "pong"})
		default:
			send(map[string]interface{}{"type": "error", "error": "unknown message type"})
		}
	}
}

func (h *Handler) handleAudit(send func(interface{}) error, msg Message) {
	rep, err := h.engine.RunWithProgress(msg.Markup, msg.Source, func(cat report.Category) {
		send(map[string]interface{}{
			"type":     "category",
			"category": cat,
		})
	})
	if err != nil {
		send(map[string]interface{}{"type": "error", "error": err.Error()})
		return
	}

	h.metrics.RecordAudit("stream", rep)
	send(map[string]interface{}{
		"type":   "complete",
		"report": rep,
	})
}
