package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"expodocs/internal/service"
)

// ExtractHandler handles invoice extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
	maxFileSize    int64
}

// NewExtractHandler creates a new ExtractHandler. maxFileSizeMB bounds
// uploaded file size; zero means 25 MB.
func NewExtractHandler(extractService service.ExtractService, maxFileSizeMB int64) *ExtractHandler {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 25
	}
	return &ExtractHandler{
		extractService: extractService,
		maxFileSize:    maxFileSizeMB << 20,
	}
}

// Upload handles POST /api/v1/extract
func (h *ExtractHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxFileSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}
	if int64(len(raw)) > h.maxFileSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	rec, err := h.extractService.ExtractFromFile(c.Request.Context(), raw, header.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// ExtractTextRequest is the request body for POST /api/v1/extract/text.
type ExtractTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// Text handles POST /api/v1/extract/text
func (h *ExtractHandler) Text(c *gin.Context) {
	var req ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must include text")
		return
	}

	rec, err := h.extractService.ExtractFromText(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}
