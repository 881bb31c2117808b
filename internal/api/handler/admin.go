package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/timmy/solarmatch/internal/logger"
	"github.com/timmy/solarmatch/internal/service"
)

// Rematcher runs a batch rematch of pending jobs.
type Rematcher interface {
	RematchPending(ctx context.Context, limit int) (*service.RematchStats, error)
}

// AdminHandler triggers and reports on batch rematch runs. Only one run is
// in flight at a time.
type AdminHandler struct {
	rematcher Rematcher

	mu            sync.RWMutex
	isRunning     bool
	lastStats     *service.RematchStats
	lastRunTime   time.Time
	lastRunStatus string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(rematcher Rematcher) *AdminHandler {
	return &AdminHandler{rematcher: rematcher}
}

// RematchRequest is the optional body of POST /api/v1/admin/rematch.
type RematchRequest struct {
	Limit int `json:"limit" binding:"omitempty,min=0,max=100000"`
}

// RematchStatusResponse reports the current and last run.
type RematchStatusResponse struct {
	IsRunning     bool                  `json:"is_running"`
	LastRunTime   string                `json:"last_run_time,omitempty"`
	LastRunStatus string                `json:"last_run_status,omitempty"`
	LastStats     *service.RematchStats `json:"last_stats,omitempty"`
}

// TriggerRematch handles POST /api/v1/admin/rematch. The run continues in the
// background after the response is written.
func (h *AdminHandler) TriggerRematch(c *gin.Context) {
	ctx := c.Request.Context()

	var req RematchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	h.mu.Lock()
	if h.isRunning {
		h.mu.Unlock()
		logger.CtxWarn(ctx, "Rematch request rejected: already running, client_ip=%s", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": "Rematch is already running"})
		return
	}
	h.isRunning = true
	h.mu.Unlock()

	logger.CtxInfo(ctx, "Starting rematch: limit=%d, client_ip=%s", req.Limit, c.ClientIP())

	// Keep request fields for logging but detach from the request's lifetime.
	runCtx := context.WithoutCancel(ctx)
	go h.run(runCtx, req.Limit)

	c.JSON(http.StatusAccepted, gin.H{"message": "Rematch started"})
}

func (h *AdminHandler) run(ctx context.Context, limit int) {
	stats, err := h.rematcher.RematchPending(ctx, limit)

	h.mu.Lock()
	h.isRunning = false
	h.lastStats = stats
	h.lastRunTime = time.Now()
	if err != nil {
		h.lastRunStatus = "failed: " + err.Error()
	} else {
		h.lastRunStatus = "success"
	}
	h.mu.Unlock()
}

// RematchStatus handles GET /api/v1/admin/rematch/status.
func (h *AdminHandler) RematchStatus(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	resp := RematchStatusResponse{
		IsRunning:     h.isRunning,
		LastRunStatus: h.lastRunStatus,
		LastStats:     h.lastStats,
	}
	if !h.lastRunTime.IsZero() {
		resp.LastRunTime = h.lastRunTime.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
