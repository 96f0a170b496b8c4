package events

// Invoice lifecycle event types.
const (
	EventInvoiceCreated  = "invoice.created"
	EventInvoiceUpdated  = "invoice.updated"
	EventInvoiceDeleted  = "invoice.deleted"
	EventInvoiceExported = "invoice.exported"
)

// InvoicePayload captures the minimal data downstream consumers need to
// react to an invoice change.
type InvoicePayload struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Status        string `json:"status"`
	Total         int64  `json:"total"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p InvoicePayload) ToMap() map[string]any {
	payload := map[string]any{
		"invoice_id":     p.InvoiceID,
		"invoice_number": p.InvoiceNumber,
	}
	if p.Status != "" {
		payload["status"] = p.Status
	}
	payload["total"] = p.Total
	return payload
}
