package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/talentbridge/backend/internal/storage"
	"github.com/talentbridge/backend/pkg/response"
)

// 10 MiB upload cap, matching the platform's profile-document limit.
const maxUploadSize = 10 << 20

// FileHandler exposes the authenticated file upload and delete endpoints.
type FileHandler struct {
	store *storage.Service
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(store *storage.Service) *FileHandler {
	return &FileHandler{store: store}
}

// Upload stores a multipart file in S3 and returns its public URL.
// POST /api/v1/files
func (h *FileHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	if header.Size > maxUploadSize {
		response.Error(c, 400, "FILE_TOO_LARGE", "File must not exceed 10MB", "")
		return
	}

	f, err := header.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	url, err := h.store.Upload(c.Request.Context(), &storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		response.InternalError(c)
		return
	}

	response.SuccessMessage(c, "File uploaded successfully", gin.H{"url": url})
}

// Delete removes a previously uploaded file by its object URL.
// DELETE /api/v1/files
func (h *FileHandler) Delete(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "File URL is required")
		return
	}

	if err := h.store.Delete(c.Request.Context(), req.URL); err != nil {
		response.InternalError(c)
		return
	}

	response.SuccessMessage(c, "File deleted successfully", nil)
}
