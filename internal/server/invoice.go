package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	obscontext "github.com/billfold/billfold/internal/observability/context"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type lineItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    int64   `json:"unit_cost"`
}

type createInvoiceRequest struct {
	ClientID    string            `json:"client_id"`
	IssueDate   string            `json:"issue_date"`
	DueDate     string            `json:"due_date"`
	CustomerRef string            `json:"customer_ref"`
	Currency    string            `json:"currency"`
	Tax         int64             `json:"tax"`
	Notes       string            `json:"notes"`
	Items       []lineItemRequest `json:"items"`
	Metadata    map[string]any    `json:"metadata"`
}

type updateInvoiceRequest struct {
	ClientID    *string           `json:"client_id"`
	Status      *string           `json:"status"`
	IssueDate   *string           `json:"issue_date"`
	DueDate     *string           `json:"due_date"`
	CustomerRef *string           `json:"customer_ref"`
	Currency    *string           `json:"currency"`
	Tax         *int64            `json:"tax"`
	Notes       *string           `json:"notes"`
	Items       []lineItemRequest `json:"items"`
}

// @Summary      Create Invoice
// @Description  Create a new draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body createInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	create := invoicedomain.CreateInvoiceRequest{
		ClientID:    strings.TrimSpace(req.ClientID),
		CustomerRef: strings.TrimSpace(req.CustomerRef),
		Currency:    strings.TrimSpace(req.Currency),
		Tax:         req.Tax,
		Notes:       req.Notes,
		Items:       toLineItemInputs(req.Items),
		Metadata:    req.Metadata,
	}
	if issueDate != nil {
		create.IssueDate = *issueDate
	}
	if dueDate != nil {
		create.DueDate = *dueDate
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices for the caller
// @Tags         invoices
// @Produce      json
// @Param        status      query     string  false  "Status"
// @Param        client_id   query     string  false  "Client ID"
// @Param        page_token  query     string  false  "Page Token"
// @Param        page_size   query     int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status   string `form:"status"`
		ClientID string `form:"client_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Pagination: query.Pagination,
		Status:     strings.TrimSpace(query.Status),
		ClientID:   strings.TrimSpace(query.ClientID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID with its line items
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Patch invoice fields and replace line items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Invoice ID"
// @Param        request  body  updateInvoiceRequest  true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [patch]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := invoicedomain.UpdateInvoiceRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		ClientID:    req.ClientID,
		Status:      req.Status,
		CustomerRef: req.CustomerRef,
		Currency:    req.Currency,
		Tax:         req.Tax,
		Notes:       req.Notes,
	}
	if req.IssueDate != nil {
		issueDate, err := parseOptionalTime(*req.IssueDate, false)
		if err != nil || issueDate == nil {
			AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
			return
		}
		update.IssueDate = issueDate
	}
	if req.DueDate != nil {
		dueDate, err := parseOptionalTime(*req.DueDate, false)
		if err != nil || dueDate == nil {
			AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
			return
		}
		update.DueDate = dueDate
	}
	if req.Items != nil {
		update.Items = toLineItemInputs(req.Items)
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Delete an invoice and its line items
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Preview Invoice
// @Description  Render the paginated HTML preview of the invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.PreviewResult
// @Router       /invoices/{id}/preview [get]
func (s *Server) PreviewInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.Preview(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Export Invoice
// @Description  Render the invoice as a PDF and stream it for download
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {file}    binary
// @Router       /invoices/{id}/export [post]
func (s *Server) ExportInvoice(c *gin.Context) {
	if !s.exportLimiter.Allow(obscontext.OwnerIDFromContext(c.Request.Context())) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	start := time.Now()
	resp, err := s.invoiceSvc.Export(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		abortExportError(c, err)
		return
	}
	s.httpMetrics.RecordRequest(c.Request.Context(), "invoice_export_render", http.StatusOK, time.Since(start))

	c.Header("Content-Disposition", `attachment; filename="`+resp.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(resp.Data)))
	c.Data(http.StatusOK, resp.ContentType, resp.Data)
}

func toLineItemInputs(items []lineItemRequest) []invoicedomain.LineItemInput {
	inputs := make([]invoicedomain.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, invoicedomain.LineItemInput{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
		})
	}
	return inputs
}
