package layout

import "time"

// DocumentView is the deterministic render input for a single invoice. It is
// assembled by the invoice service from the persisted invoice plus resolved
// sender and recipient records; renderers never fetch anything themselves.
type DocumentView struct {
	InvoiceNumber string
	Status        string
	IssueDate     time.Time
	DueDate       time.Time
	CustomerRef   string
	Currency      string

	// Sender and Recipient are nil when the owning profile or the client
	// has not been resolved. Preview renders placeholders for nil parties;
	// export refuses to run before either is nil.
	Sender    *PartyView
	Recipient *PartyView

	// Items holds only valid line items (non-empty name), in display order.
	Items []LineItemView

	Subtotal int64
	Tax      int64
	Total    int64
	Notes    string
}

// PartyView is the render shape shared by the sender profile and the
// recipient client.
type PartyView struct {
	DisplayName  string
	Email        string
	Phone        string
	AddressLines []string
}

// LineItemView is a single priced row of the items table.
type LineItemView struct {
	Name        string
	Description string
	Quantity    float64
	UnitCost    int64
	LineTotal   int64
}

// PageView is one assembled page: the slice of items it carries plus the
// structural blocks it shows. Both renderers draw from the same PageView
// sequence, which is what keeps the preview and the exported PDF structurally
// identical.
type PageView struct {
	Index       int
	Count       int
	Items       []LineItemView
	ShowParties bool
	ShowTotals  bool
	ShowNotes   bool
}

// BuildPages materializes a Plan against a document's valid items. Item
// ranges beyond len(doc.Items) are clamped; a plan computed from the same
// document never hits the clamp.
func BuildPages(doc DocumentView, plan Plan) []PageView {
	pages := make([]PageView, 0, len(plan.Pages))
	for _, spec := range plan.Pages {
		start, end := spec.ItemStart, spec.ItemEnd
		if start > len(doc.Items) {
			start = len(doc.Items)
		}
		if end > len(doc.Items) {
			end = len(doc.Items)
		}
		pages = append(pages, PageView{
			Index:       spec.PageIndex,
			Count:       plan.TotalPages,
			Items:       doc.Items[start:end],
			ShowParties: spec.ShowParties,
			ShowTotals:  spec.ShowTotals,
			ShowNotes:   spec.ShowNotes,
		})
	}
	return pages
}
