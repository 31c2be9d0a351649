package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"expodocs/internal/domain"
	"expodocs/internal/middleware"
	"expodocs/internal/service"
)

// InvoiceHandler handles invoice generation and retrieval endpoints.
type InvoiceHandler struct {
	renderService  service.RenderService
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(renderService service.RenderService, invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{renderService: renderService, invoiceService: invoiceService}
}

// GenerateRequest is the request body for POST /api/v1/invoices/generate.
type GenerateRequest struct {
	Record   *domain.InvoiceRecord   `json:"record" binding:"required"`
	Settings domain.DocumentSettings `json:"settings"`
}

// Generate handles POST /api/v1/invoices/generate
func (h *InvoiceHandler) Generate(c *gin.Context) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must include a record")
		return
	}

	result, err := h.renderService.Generate(c.Request.Context(), service.GenerateInput{
		OwnerID:  ownerID,
		Record:   req.Record,
		Settings: req.Settings,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Check handles GET /api/v1/invoices/check?number=...
// It reports whether an invoice number is still free for this owner.
func (h *InvoiceHandler) Check(c *gin.Context) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return
	}

	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_NUMBER", "number query parameter is required")
		return
	}

	err = h.invoiceService.CheckUnique(c.Request.Context(), ownerID, number)
	switch {
	case err == nil:
		RespondOK(c, gin.H{"number": number, "available": true})
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		RespondOK(c, gin.H{"number": number, "available": false})
	default:
		HandleError(c, err)
	}
}

// invoiceView is the API shape of a persisted invoice with its JSON payloads
// expanded.
type invoiceView struct {
	domain.Invoice
	Record json.RawMessage `json:"record"`
	Links  json.RawMessage `json:"links"`
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), ownerID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoiceView{Invoice: *inv, Record: inv.Record, Links: inv.Links})
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	views := make([]invoiceView, len(invoices))
	for i, inv := range invoices {
		views[i] = invoiceView{Invoice: inv, Record: inv.Record, Links: inv.Links}
	}

	RespondPaginated(c, views, PagMeta{Total: total, Offset: offset, Limit: limit})
}
