// Package domain contains the invoice aggregate and its derived-value rules.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/billfold/billfold/internal/invoice/layout"
)

const (
	StatusDraft    = "draft"
	StatusComplete = "complete"
)

// Invoice is the persisted invoice aggregate. Subtotal and Total are derived
// from the line items and tax; they are recomputed on every write and never
// accepted from input.
type Invoice struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;index" json:"owner_id"`

	ClientID      snowflake.ID `gorm:"index" json:"client_id"`
	InvoiceNumber string       `gorm:"type:text;not null;uniqueIndex:idx_invoices_owner_number,composite:owner_id" json:"invoice_number"`
	Status        string       `gorm:"type:text;not null;default:draft" json:"status"`

	IssueDate   time.Time `gorm:"not null" json:"issue_date"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	CustomerRef string    `gorm:"type:text" json:"customer_ref,omitempty"`
	Currency    string    `gorm:"type:text;not null;default:USD" json:"currency"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	Tax      int64  `gorm:"not null;default:0" json:"tax"`
	Subtotal int64  `gorm:"not null;default:0" json:"subtotal"`
	Total    int64  `gorm:"not null;default:0" json:"total"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one priced row of an invoice. Position is the display
// order; rendering never reorders rows.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"-"`
	OwnerID   snowflake.ID `gorm:"not null;index" json:"-"`
	Position  int          `gorm:"not null" json:"position"`

	Name        string  `gorm:"type:text;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Quantity    float64 `gorm:"not null;default:0" json:"quantity"`
	UnitCost    int64   `gorm:"not null;default:0" json:"unit_cost"`
	LineTotal   int64   `gorm:"not null;default:0" json:"line_total"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// Valid reports whether the item participates in rendering and persistence.
// Items with an empty name may exist transiently during editing but are
// never paginated or stored.
func (i *InvoiceItem) Valid() bool {
	return strings.TrimSpace(i.Name) != ""
}

// Recalculate restores the line-total invariant after a quantity or unit
// cost change.
func (i *InvoiceItem) Recalculate() {
	i.LineTotal = layout.LineTotal(i.Quantity, i.UnitCost)
}

// ValidItems returns the items considered for rendering, in display order.
func (inv *Invoice) ValidItems() []InvoiceItem {
	items := make([]InvoiceItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		if item.Valid() {
			items = append(items, item)
		}
	}
	return items
}

// Recalculate restores every derived value on the aggregate: each line
// total, the subtotal over valid items, and the grand total.
func (inv *Invoice) Recalculate() {
	var subtotal int64
	for idx := range inv.Items {
		inv.Items[idx].Recalculate()
		if inv.Items[idx].Valid() {
			subtotal += inv.Items[idx].LineTotal
		}
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal + inv.Tax
}
