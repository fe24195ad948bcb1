package handlers

import (
	"errors"
	"net/http"
	"time"

	"commandcenter-backend/service"

	"github.com/gin-gonic/gin"
)

// ReconHandler exposes the recon job to an external scheduler
type ReconHandler struct {
	reconService *service.ReconService
}

// NewReconHandler creates a new recon handler
func NewReconHandler(reconService *service.ReconService) *ReconHandler {
	return &ReconHandler{reconService: reconService}
}

// RunRecon handles GET|POST /api/recon. The body keeps the cron contract
// rather than the success envelope.
func (h *ReconHandler) RunRecon(c *gin.Context) {
	result, err := h.reconService.Run(c.Request.Context())
	if err != nil {
		// Provider error bodies stay in the request log
		status, message := http.StatusInternalServerError, err.Error()
		if errors.Is(err, service.ErrDeliveryFailed) {
			status, message = http.StatusBadGateway, service.ErrDeliveryFailed.Error()
		}
		_ = c.Error(err)
		c.JSON(status, gin.H{
			"status": "Error",
			"error":  message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    result.Status,
		"emailId":   result.EmailID,
		"timestamp": result.Timestamp.Format(time.RFC3339),
	})
}
