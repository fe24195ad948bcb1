package handlers

import (
	"net/http"

	"commandcenter-backend/models"

	"github.com/gin-gonic/gin"
)

// CreatePartyRequest represents the request body for adding a party
type CreatePartyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Role     string  `json:"role" binding:"required"`
	Company  *string `json:"company"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	LinkedIn *string `json:"linkedin"`
	Twitter  *string `json:"twitter"`
	PhotoURL *string `json:"photo_url"`
}

// AddIntelRequest represents the request body for recording intel
type AddIntelRequest struct {
	Source    string  `json:"source" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Content   string  `json:"content"`
	URL       *string `json:"url"`
	Important bool    `json:"important"`
}

// ListParties handles GET /api/parties
func (h *CaseHandler) ListParties(c *gin.Context) {
	parties, err := h.caseService.ListParties(c.Query("q"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, parties)
}

// GetParty handles GET /api/parties/:id
func (h *CaseHandler) GetParty(c *gin.Context) {
	party, err := h.caseService.GetParty(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, party)
}

// CreateParty handles POST /api/parties
func (h *CaseHandler) CreateParty(c *gin.Context) {
	var req CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	party, err := h.caseService.CreateParty(models.Party{
		Name:     req.Name,
		Role:     models.PartyRole(req.Role),
		Company:  req.Company,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		LinkedIn: req.LinkedIn,
		Twitter:  req.Twitter,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, party)
}

// AddIntel handles POST /api/parties/:id/intel
func (h *CaseHandler) AddIntel(c *gin.Context) {
	var req AddIntelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	update, err := h.caseService.AddIntel(c.Param("id"), models.IntelUpdate{
		Source:    models.IntelSource(req.Source),
		Title:     req.Title,
		Content:   req.Content,
		URL:       req.URL,
		Important: req.Important,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, update)
}

// MarkIntelRead handles PUT /api/parties/:id/intel/:intelId/read
func (h *CaseHandler) MarkIntelRead(c *gin.Context) {
	if err := h.caseService.MarkIntelRead(c.Param("id"), c.Param("intelId")); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"read": true})
}
