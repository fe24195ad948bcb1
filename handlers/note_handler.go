package handlers

import (
	"net/http"

	"commandcenter-backend/models"
	"commandcenter-backend/service"

	"github.com/gin-gonic/gin"
)

// CreateNoteRequest represents the request body for adding a note
type CreateNoteRequest struct {
	Content    string `json:"content" binding:"required"`
	Category   string `json:"category"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Pinned     bool   `json:"pinned"`
}

// ListNotes handles GET /api/notes
func (h *CaseHandler) ListNotes(c *gin.Context) {
	filter := service.NoteFilter{
		Category:   models.NoteCategory(c.Query("category")),
		Query:      c.Query("q"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		respondError(c, http.StatusBadRequest, "INVALID_CATEGORY", "unknown note category")
		return
	}

	notes, err := h.caseService.ListNotes(filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, notes)
}

// CreateNote handles POST /api/notes
func (h *CaseHandler) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	note, err := h.caseService.CreateNote(models.Note{
		Content:    req.Content,
		Category:   models.NoteCategory(req.Category),
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Pinned:     req.Pinned,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, note)
}

// ToggleNotePinned handles PUT /api/notes/:id/pin
func (h *CaseHandler) ToggleNotePinned(c *gin.Context) {
	note, err := h.caseService.ToggleNotePinned(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/:id
func (h *CaseHandler) DeleteNote(c *gin.Context) {
	if err := h.caseService.DeleteNote(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
