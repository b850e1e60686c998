package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docvert/internal/domain"
	"docvert/internal/export"
	"docvert/internal/service"
)

// ConvertHandler handles document conversion endpoints.
type ConvertHandler struct {
	convertService service.ConvertService
}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler(convertService service.ConvertService) *ConvertHandler {
	return &ConvertHandler{convertService: convertService}
}

// FolderRequest is the body of a server-side folder conversion request.
type FolderRequest struct {
	InputDir  string `json:"input_dir" binding:"required"`
	OutputDir string `json:"output_dir" binding:"required"`
}

// UploadOutcome is the per-file result of a multi-file upload conversion.
type UploadOutcome struct {
	Filename string                   `json:"filename"`
	Result   *domain.ConversionResult `json:"result,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

// Convert handles POST /api/v1/convert
//
// Accepts one .docx as multipart field "file" and responds with the
// ConversionResult. ?download=1 returns the JSON artifact as an
// attachment; ?format=csv returns the record as CSV instead.
func (h *ConvertHandler) Convert(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.convertService.ConvertUpload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	stem := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := export.WriteRecordCSV(&buf, result); err != nil {
			HandleError(c, err)
			return
		}
		attach(c, stem+".csv", "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	if c.Query("download") == "1" {
		data, err := h.convertService.MarshalResult(result)
		if err != nil {
			HandleError(c, err)
			return
		}
		attach(c, stem+domain.OutputExt, "application/json; charset=utf-8", data)
		return
	}

	RespondOK(c, result)
}

// ConvertBatch handles POST /api/v1/convert/batch
//
// Accepts several .docx files as multipart field "files". Each file is
// converted independently; one bad file never fails the request.
func (h *ConvertHandler) ConvertBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "files field is required")
		return
	}

	outcomes := make([]UploadOutcome, 0, len(headers))
	for _, header := range headers {
		outcomes = append(outcomes, h.convertOne(c, header))
	}

	RespondOK(c, outcomes)
}

func (h *ConvertHandler) convertOne(c *gin.Context, header *multipart.FileHeader) UploadOutcome {
	outcome := UploadOutcome{Filename: header.Filename}

	file, err := header.Open()
	if err != nil {
		outcome.Error = fmt.Sprintf("open upload: %v", err)
		return outcome
	}
	defer func() { _ = file.Close() }()

	result, err := h.convertService.ConvertUpload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Result = result
	return outcome
}

// ConvertFolder handles POST /api/v1/convert/folder
//
// Runs a server-side folder conversion. ?report=xlsx streams the batch
// report workbook instead of the JSON result.
func (h *ConvertHandler) ConvertFolder(c *gin.Context) {
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "input_dir and output_dir are required")
		return
	}

	batch, err := h.convertService.ConvertFolder(c.Request.Context(), req.InputDir, req.OutputDir)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("report") == "xlsx" {
		var buf bytes.Buffer
		if err := export.WriteBatchXLSX(&buf, batch); err != nil {
			HandleError(c, err)
			return
		}
		attach(c, "conversion-report.xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
		return
	}

	RespondOK(c, batch)
}

func attach(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
