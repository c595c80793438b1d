package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagelens/backend/internal/audit"
	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/report"
	"github.com/pagelens/backend/internal/batch"
	"github.com/pagelens/backend/internal/fetch"
	"github.com/pagelens/backend/internal/infrastructure/monitoring"
	"github.com/pagelens/backend/internal/logging"
	"github.com/pagelens/backend/internal/render"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	engine  *audit.Engine
	fetcher *fetch.Client
	batcher *batch.Auditor
	store   *Store
	metrics *monitoring.Metrics
	log     *logging.Logger
	started time.Time
}

// NewHandlers creates a new handler set.
func NewHandlers(
	engine *audit.Engine,
	fetcher *fetch.Client,
	batcher *batch.Auditor,
	store *Store,
	metrics *monitoring.Metrics,
	log *logging.Logger,
) *Handlers {
	return &Handlers{
		engine:  engine,
		fetcher: fetcher,
		batcher: batcher,
		store:   store,
		metrics: metrics,
		log:     log.Named("http"),
		started: time.Now(),
	}
}

// AuditRequest is the POST /audit body.
type AuditRequest struct {
	Markup string `json:"markup"`
	Source string `json:"source"`
}

// AuditURLRequest is the POST /audit/url body.
type AuditURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// BatchRequest is the POST /audit/batch body.
type BatchRequest struct {
	Root    string `json:"root" binding:"required"`
	Pattern string `json:"pattern"`
}

// Root describes the service.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "pagelens",
		"endpoints": []string{
			"POST /audit",
			"POST /audit/url",
			"POST /audit/batch",
			"GET /audit/:id/export",
			"GET /stream",
			"GET /health",
			"GET /metrics",
		},
	})
}

// Health is the liveness probe.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"reports_stored": h.store.Len(),
	})
}

// Audit runs the engine on pasted markup.
func (h *Handlers) Audit(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rep, err := h.engine.Run(req.Markup, req.Source)
	if err != nil {
		h.auditError(c, err)
		return
	}

	h.store.Put(rep)
	h.metrics.RecordAudit("raw", rep)
	h.respondReport(c, rep)
}

// AuditURL fetches a remote page and audits it.
func (h *Handlers) AuditURL(c *gin.Context) {
	var req AuditURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url required"})
		return
	}

	markup, finalURL, err := h.fetcher.Page(c.Request.Context(), req.URL)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, fetch.ErrNotHTML) {
			status = http.StatusUnsupportedMediaType
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.engine.Run(markup, finalURL)
	if err != nil {
		h.auditError(c, err)
		return
	}

	h.store.Put(rep)
	h.metrics.RecordAudit("url", rep)
	h.respondReport(c, rep)
}

// AuditBatch audits files under a directory root.
func (h *Handlers) AuditBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "root required"})
		return
	}

	result, err := h.batcher.Run(c.Request.Context(), req.Root, req.Pattern)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, file := range result.Files {
		if file.Report != nil {
			h.store.Put(file.Report)
			h.metrics.RecordAudit("batch", file.Report)
		}
	}
	c.JSON(http.StatusOK, result)
}

// Export renders a stored report as HTML or plain text.
func (h *Handlers) Export(c *gin.Context) {
	rep, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	switch format := c.DefaultQuery("format", "html"); format {
	case "html":
		page, err := render.HTML(rep)
		if err != nil {
			h.log.Error("render failed", zap.String("run", rep.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	case "text":
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(render.Text(rep)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be html or text"})
	}
}

// auditError maps engine errors to HTTP statuses.
func (h *Handlers) auditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, audit.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "markup is empty"})
	case errors.Is(err, dom.ErrTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		h.log.Error("audit failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "audit failed"})
	}
}

// respondReport writes the report with sonic, which marshals large issue
// lists noticeably faster than the default encoder.
func (h *Handlers) respondReport(c *gin.Context, rep *report.Report) {
	body, err := sonic.Marshal(rep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
