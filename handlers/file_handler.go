package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"commandcenter-backend/models"
	"commandcenter-backend/service"
	"commandcenter-backend/storage"

	"github.com/gin-gonic/gin"
)

// DefaultMaxFileSize caps uploads when no limit is configured
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// FileHandler handles HTTP requests for the document library
type FileHandler struct {
	caseService      *service.CaseService
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewFileHandler creates a new file handler. maxFileSize <= 0 uses DefaultMaxFileSize.
func NewFileHandler(caseService *service.CaseService, maxFileSize int64) *FileHandler {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &FileHandler{
		caseService: caseService,
		maxFileSize: maxFileSize,
		allowedMimeTypes: map[string]bool{
			"application/pdf":    true,
			"application/msword": true, // .doc
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true, // .xlsx
		},
	}
}

func (h *FileHandler) mimeAllowed(mimeType string) bool {
	return h.allowedMimeTypes[mimeType] ||
		strings.HasPrefix(mimeType, "text/") ||
		strings.HasPrefix(mimeType, "image/")
}

// ListFiles handles GET /api/files
func (h *FileHandler) ListFiles(c *gin.Context) {
	filter := service.FileFilter{
		Query:    c.Query("q"),
		Category: models.FileCategory(c.Query("category")),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		respondError(c, http.StatusBadRequest, "INVALID_CATEGORY", "unknown file category")
		return
	}

	files, err := h.caseService.ListFiles(filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, files)
}

// UploadFile handles POST /api/files/upload
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	category := models.FileCategory(c.PostForm("category"))
	if category != "" && !category.Valid() {
		respondError(c, http.StatusBadRequest, "INVALID_CATEGORY", "unknown file category")
		return
	}

	// Browsers send octet-stream for types they do not know
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = storage.ContentType(fileHeader.Filename)
	}
	if !h.mimeAllowed(mimeType) {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
			"File type not allowed. Allowed types: PDF, DOC, DOCX, XLSX, text, images")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	var notes *string
	if n := strings.TrimSpace(c.PostForm("notes")); n != "" {
		notes = &n
	}

	record, err := h.caseService.UploadFile(c.Request.Context(), service.UploadFileRequest{
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Size:     fileHeader.Size,
		Category: category,
		Notes:    notes,
		Body:     file,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, record)
}

// GetFile handles GET /api/files/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	file, err := h.caseService.GetFile(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, file)
}

// DownloadFile handles GET /api/files/:id/download
func (h *FileHandler) DownloadFile(c *gin.Context) {
	file, reader, err := h.caseService.OpenFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.OriginalName),
	})
}

// UpdateFileNotesRequest represents the request body for replacing notes
type UpdateFileNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateFileNotes handles PUT /api/files/:id/notes
func (h *FileHandler) UpdateFileNotes(c *gin.Context) {
	var req UpdateFileNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	file, err := h.caseService.SetFileNotes(c.Param("id"), req.Notes)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, file)
}

// DeleteFile handles DELETE /api/files/:id
func (h *FileHandler) DeleteFile(c *gin.Context) {
	if err := h.caseService.DeleteFile(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
