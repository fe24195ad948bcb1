package handlers

import (
	"net/http"
	"strconv"
	"time"

	"commandcenter-backend/dashboard"
	"commandcenter-backend/models"
	"commandcenter-backend/service"

	"github.com/gin-gonic/gin"
)

// CreateTimelineEventRequest represents the request body for adding an event
type CreateTimelineEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	EventType   string    `json:"event_type" binding:"required"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
}

// ListTimeline handles GET /api/timeline
func (h *CaseHandler) ListTimeline(c *gin.Context) {
	filter := service.TimelineFilter{Type: models.EventType(c.Query("type"))}
	if filter.Type != "" && !filter.Type.Valid() {
		respondError(c, http.StatusBadRequest, "INVALID_TYPE", "unknown event type")
		return
	}
	if raw := c.Query("show_completed"); raw != "" {
		show, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "show_completed must be a boolean")
			return
		}
		filter.ShowCompleted = show
	}

	entries, err := h.caseService.ListTimeline(filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entries)
}

// UpcomingDeadlines handles GET /api/timeline/upcoming
func (h *CaseHandler) UpcomingDeadlines(c *gin.Context) {
	days, ok := queryDays(c, dashboard.DefaultDeadlineWindow)
	if !ok {
		return
	}

	events, err := h.caseService.UpcomingDeadlines(days)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, events)
}

// CreateTimelineEvent handles POST /api/timeline
func (h *CaseHandler) CreateTimelineEvent(c *gin.Context) {
	var req CreateTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	event, err := h.caseService.CreateTimelineEvent(models.TimelineEvent{
		Title:       req.Title,
		Description: req.Description,
		EventType:   models.EventType(req.EventType),
		EventDate:   req.EventDate,
		Priority:    models.Priority(req.Priority),
		Completed:   req.Completed,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, event)
}

// ToggleTimelineEvent handles PUT /api/timeline/:id/toggle
func (h *CaseHandler) ToggleTimelineEvent(c *gin.Context) {
	event, err := h.caseService.ToggleTimelineEvent(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, event)
}
