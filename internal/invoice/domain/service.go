package domain

import (
	"context"
	"errors"
	"time"

	"github.com/billfold/billfold/internal/invoice/render"
	"github.com/billfold/billfold/pkg/db/pagination"
)

// LineItemInput is the write shape for one invoice row.
type LineItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    int64   `json:"unit_cost"`
}

type CreateInvoiceRequest struct {
	ClientID    string          `json:"client_id"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
	CustomerRef string          `json:"customer_ref"`
	Currency    string          `json:"currency"`
	Tax         int64           `json:"tax"`
	Notes       string          `json:"notes"`
	Items       []LineItemInput `json:"items"`
	Metadata    map[string]any  `json:"metadata"`
}

type UpdateInvoiceRequest struct {
	ID          string          `json:"id"`
	ClientID    *string         `json:"client_id"`
	Status      *string         `json:"status"`
	IssueDate   *time.Time      `json:"issue_date"`
	DueDate     *time.Time      `json:"due_date"`
	CustomerRef *string         `json:"customer_ref"`
	Currency    *string         `json:"currency"`
	Tax         *int64          `json:"tax"`
	Notes       *string         `json:"notes"`
	Items       []LineItemInput `json:"items"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	Status   string
	ClientID string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// PreviewResult carries the rendered preview pages plus the page count the
// editor surfaces.
type PreviewResult struct {
	InvoiceID  string        `json:"invoice_id"`
	TotalPages int           `json:"total_pages"`
	Pages      []render.Page `json:"pages"`
}

// ExportResult is the finished binary artifact with its download metadata.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (*Invoice, error)
	Delete(ctx context.Context, id string) error

	// Preview renders the live on-screen pages for the current persisted
	// state. A missing sender or recipient degrades to a placeholder.
	Preview(ctx context.Context, id string) (*PreviewResult, error)

	// Export re-fetches the persisted snapshot and renders the binary
	// document. A missing sender, recipient or invoice fails closed.
	Export(ctx context.Context, id string) (*ExportResult, error)
}

var (
	ErrInvalidOwner       = errors.New("invalid_owner")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidUnitCost    = errors.New("invalid_unit_cost")
	ErrInvalidTax         = errors.New("invalid_tax")
	ErrNotFound           = errors.New("invoice_not_found")
	ErrClientNotFound     = errors.New("client_not_found")
	ErrProfileNotFound    = errors.New("sender_profile_not_found")
	ErrPreviewUnavailable = errors.New("preview_unavailable")
)
