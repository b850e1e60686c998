package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvert/internal/domain"
	"docvert/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var (
		readErr  *domain.ReadError
		writeErr *domain.WriteError
		dirErr   *domain.DirectoryError
	)

	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: docx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.As(err, &readErr):
		return http.StatusUnprocessableEntity, "INVALID_DOCUMENT", readErr.Error()
	case errors.As(err, &dirErr):
		if dirErr.Op == "read" {
			return http.StatusBadRequest, "DIRECTORY_NOT_READABLE", dirErr.Error()
		}
		return http.StatusInternalServerError, "DIRECTORY_NOT_WRITABLE", dirErr.Error()
	case errors.As(err, &writeErr):
		return http.StatusInternalServerError, "WRITE_FAILED", "failed to write output artifact"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
	}
}

// HandleError maps an error and responds; unexpected errors are logged
// with the request ID for correlation.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status == http.StatusInternalServerError {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%v] handler error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
