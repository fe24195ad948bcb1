package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"commandcenter-backend/dashboard"
	"commandcenter-backend/repository"
	"commandcenter-backend/storage"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondStoreError maps store and storage errors onto HTTP statuses
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, repository.ErrDuplicateID):
		respondError(c, http.StatusConflict, "DUPLICATE_ID", err.Error())
	case errors.Is(err, repository.ErrInvalidValue), errors.Is(err, repository.ErrMissingField):
		respondError(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// queryDays parses the days query parameter, falling back to def. Values
// above dashboard.MaxWindowDays are rejected.
func queryDays(c *gin.Context, def int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return def, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_DAYS", "days must be an integer")
		return 0, false
	}
	if days > dashboard.MaxWindowDays {
		respondError(c, http.StatusBadRequest, "INVALID_DAYS",
			fmt.Sprintf("days must not exceed %d", dashboard.MaxWindowDays))
		return 0, false
	}
	return days, true
}
