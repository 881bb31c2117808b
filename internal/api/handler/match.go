package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/matching"
	"github.com/timmy/solarmatch/internal/service"
)

// MatchService is the part of service.MatchService the match endpoints use.
type MatchService interface {
	FindMatches(ctx context.Context, jobID int64, overrides *matching.Overrides) ([]service.MatchResult, error)
	GetMatchesForJob(ctx context.Context, jobID int64) ([]service.MatchResult, error)
	GetMatchesForProfessional(ctx context.Context, professionalID int64) ([]service.MatchResult, error)
	UpdateMatchStatus(ctx context.Context, matchID int64, status domain.MatchStatus) (*service.MatchResult, error)
	DeleteMatch(ctx context.Context, matchID int64) error
}

// MatchHandler serves the match endpoints.
type MatchHandler struct {
	matches MatchService
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(matches MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// FindMatchesRequest is the body of POST /api/v1/matches/find.
type FindMatchesRequest struct {
	JobID int64 `json:"job_id" binding:"required,gt=0"`
	matching.Overrides
}

// MatchListResponse wraps a list of matches.
type MatchListResponse struct {
	Matches []service.MatchResult `json:"matches"`
	Total   int                   `json:"total"`
}

// UpdateStatusRequest is the optional body of PATCH /api/v1/matches/:matchId/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func listResponse(results []service.MatchResult) MatchListResponse {
	if results == nil {
		results = []service.MatchResult{}
	}
	return MatchListResponse{Matches: results, Total: len(results)}
}

// FindMatches handles POST /api/v1/matches/find.
func (h *MatchHandler) FindMatches(c *gin.Context) {
	var req FindMatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	results, err := h.matches.FindMatches(c.Request.Context(), req.JobID, &req.Overrides)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(results))
}

// ListForJob handles GET /api/v1/matches/job/:jobId.
func (h *MatchHandler) ListForJob(c *gin.Context) {
	jobID, ok := idParam(c, "jobId")
	if !ok {
		return
	}
	results, err := h.matches.GetMatchesForJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(results))
}

// ListForProfessional handles GET /api/v1/matches/professional/:professionalId.
func (h *MatchHandler) ListForProfessional(c *gin.Context) {
	proID, ok := idParam(c, "professionalId")
	if !ok {
		return
	}
	results, err := h.matches.GetMatchesForProfessional(c.Request.Context(), proID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(results))
}

// UpdateStatus handles PATCH /api/v1/matches/:matchId/status. The status comes
// from the "status" query parameter or a JSON body.
func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	matchID, ok := idParam(c, "matchId")
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			status = req.Status
		}
	}
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	result, err := h.matches.UpdateMatchStatus(c.Request.Context(), matchID, domain.MatchStatus(strings.ToUpper(status)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /api/v1/matches/:matchId.
func (h *MatchHandler) Delete(c *gin.Context) {
	matchID, ok := idParam(c, "matchId")
	if !ok {
		return
	}
	if err := h.matches.DeleteMatch(c.Request.Context(), matchID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
