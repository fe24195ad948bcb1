package handlers

import (
	"net/http"
	"time"

	"commandcenter-backend/dashboard"
	"commandcenter-backend/models"

	"github.com/gin-gonic/gin"
)

// CreateAlertRequest represents the request body for raising an alert
type CreateAlertRequest struct {
	Title    string     `json:"title" binding:"required"`
	Message  *string    `json:"message"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date"`
	Type     string     `json:"type" binding:"required"`
}

// ListAlerts handles GET /api/alerts
func (h *CaseHandler) ListAlerts(c *gin.Context) {
	feed, err := h.caseService.AlertFeed()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	summary, err := h.caseService.Dashboard(dashboard.DefaultDeadlineWindow)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"alerts":             feed,
		"notification_total": summary.NotificationTotal,
		"badge":              summary.Badge,
	})
}

// CreateAlert handles POST /api/alerts
func (h *CaseHandler) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	alert, err := h.caseService.CreateAlert(models.Alert{
		Title:    req.Title,
		Message:  req.Message,
		Priority: models.Priority(req.Priority),
		DueDate:  req.DueDate,
		Type:     models.AlertType(req.Type),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, alert)
}

// DismissAlert handles PUT /api/alerts/:id/dismiss
func (h *CaseHandler) DismissAlert(c *gin.Context) {
	alert, err := h.caseService.DismissAlert(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"alert": alert,
		"state": alert.State(),
	})
}

// PurgeDismissedAlerts handles POST /api/alerts/purge
func (h *CaseHandler) PurgeDismissedAlerts(c *gin.Context) {
	n, err := h.caseService.PurgeDismissedAlerts()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"purged": n})
}
