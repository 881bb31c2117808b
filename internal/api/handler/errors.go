package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/logger"
	"github.com/timmy/solarmatch/internal/service"
)

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrLockTimeout):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ": " + c.Param(name)})
		return 0, false
	}
	return id, true
}
