package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docvert/internal/config"
	"docvert/internal/port"
)

// ArchiveHandler serves previously archived conversion artifacts.
type ArchiveHandler struct {
	storage port.ObjectStorage
	cfg     *config.ArchiveConfig
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(storage port.ObjectStorage, cfg *config.ArchiveConfig) *ArchiveHandler {
	return &ArchiveHandler{storage: storage, cfg: cfg}
}

// PresignedURLResponse carries a time-limited download link for an
// archived artifact.
type PresignedURLResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// GetURL handles GET /api/v1/archive/url?key=...
//
// Returns a presigned GET URL so clients can re-download a past
// conversion without routing the artifact through the server.
func (h *ArchiveHandler) GetURL(c *gin.Context) {
	key, ok := artifactKey(c)
	if !ok {
		return
	}

	url, err := h.storage.GetPresignedURL(c.Request.Context(), h.cfg.Bucket, key, h.cfg.PresignExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, PresignedURLResponse{Key: key, URL: url, ExpiresIn: h.cfg.PresignExpiry})
}

// Delete handles DELETE /api/v1/archive?key=...
func (h *ArchiveHandler) Delete(c *gin.Context) {
	key, ok := artifactKey(c)
	if !ok {
		return
	}

	if err := h.storage.Delete(c.Request.Context(), h.cfg.Bucket, key); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"key": key, "deleted": true})
}

// artifactKey validates the key query parameter. Only keys under the
// archive prefix are served; traversal sequences are rejected.
func artifactKey(c *gin.Context) (string, bool) {
	key := c.Query("key")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_KEY", "key query parameter is required")
		return "", false
	}
	if strings.Contains(key, "..") || !strings.HasPrefix(key, "converted/") {
		RespondError(c, http.StatusBadRequest, "INVALID_KEY", "key must reference an archived artifact")
		return "", false
	}
	return key, true
}
