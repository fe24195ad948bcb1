package handlers

import (
	"net/http"

	"commandcenter-backend/dashboard"
	"commandcenter-backend/service"

	"github.com/gin-gonic/gin"
)

// CaseHandler serves the dashboard tabs backed by the case store
type CaseHandler struct {
	caseService *service.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// GetDashboard handles GET /api/dashboard
func (h *CaseHandler) GetDashboard(c *gin.Context) {
	days, ok := queryDays(c, dashboard.DefaultDeadlineWindow)
	if !ok {
		return
	}

	summary, err := h.caseService.Dashboard(days)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, summary)
}

// ListMilestones handles GET /api/milestones
func (h *CaseHandler) ListMilestones(c *gin.Context) {
	milestones, err := h.caseService.Milestones()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"milestones":          milestones,
		"progress":            dashboard.DomesticationProgress(milestones),
		"progress_percent":    dashboard.ProgressPercent(milestones),
		"collection_unlocked": dashboard.CollectionUnlocked(milestones),
	})
}

// ToggleMilestone handles PUT /api/milestones/:step/toggle
func (h *CaseHandler) ToggleMilestone(c *gin.Context) {
	m, err := h.caseService.ToggleMilestone(c.Param("step"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}
