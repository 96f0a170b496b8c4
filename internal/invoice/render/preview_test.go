package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/invoice/layout"
)

func sampleParty(name string) *layout.PartyView {
	return &layout.PartyView{
		DisplayName:  name,
		Email:        strings.ToLower(name) + "@example.com",
		AddressLines: []string{"1 Main St", "Springfield, OR, US 97477"},
	}
}

func sampleDocument(itemCount int) layout.DocumentView {
	doc := layout.DocumentView{
		InvoiceNumber: "INV-000017",
		Status:        "draft",
		IssueDate:     time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		CustomerRef:   "PO-1881",
		Currency:      "USD",
		Sender:        sampleParty("Sender"),
		Recipient:     sampleParty("Recipient"),
		Tax:           500,
		Notes:         "Payment due within 30 days.\n\nThank you for your business.",
	}
	for i := 0; i < itemCount; i++ {
		item := layout.LineItemView{
			Name:      fmt.Sprintf("Service %02d", i),
			Quantity:  2,
			UnitCost:  1500,
			LineTotal: 3000,
		}
		doc.Items = append(doc.Items, item)
		doc.Subtotal += item.LineTotal
	}
	doc.Total = doc.Subtotal + doc.Tax
	return doc
}

func TestPreviewRendersOnePagePerSpec(t *testing.T) {
	doc := sampleDocument(17)
	plan := layout.ComputePlan(len(doc.Items), 8)
	pages, err := NewPreviewRenderer().RenderPages(doc, plan)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	for i, page := range pages {
		if page.Index != i {
			t.Fatalf("page %d carries index %d", i, page.Index)
		}
		if !strings.Contains(page.HTML, "INV-000017") {
			t.Fatalf("page %d missing running header", i)
		}
		if !strings.Contains(page.HTML, fmt.Sprintf("Page %d of 3", i+1)) {
			t.Fatalf("page %d missing footer", i)
		}
	}
}

func TestPreviewItemPlacementFollowsPlan(t *testing.T) {
	doc := sampleDocument(17)
	plan := layout.ComputePlan(len(doc.Items), 8)
	pages, err := NewPreviewRenderer().RenderPages(doc, plan)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, spec := range plan.Pages {
		html := pages[spec.PageIndex].HTML
		for i, item := range doc.Items {
			onPage := i >= spec.ItemStart && i < spec.ItemEnd
			if strings.Contains(html, item.Name) != onPage {
				t.Fatalf("item %q on page %d: presence=%v, want %v", item.Name, spec.PageIndex, !onPage, onPage)
			}
		}
	}
}

func TestPreviewStructuralBlocks(t *testing.T) {
	doc := sampleDocument(17)
	plan := layout.ComputePlan(len(doc.Items), 8)
	pages, err := NewPreviewRenderer().RenderPages(doc, plan)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i, page := range pages {
		hasParties := strings.Contains(page.HTML, "Bill To")
		hasTotals := strings.Contains(page.HTML, "Subtotal")
		hasNotes := strings.Contains(page.HTML, "Thank you for your business.")
		if hasParties != (i == 0) {
			t.Fatalf("page %d: parties block present=%v", i, hasParties)
		}
		last := i == len(pages)-1
		if hasTotals != last || hasNotes != last {
			t.Fatalf("page %d: totals=%v notes=%v, want %v", i, hasTotals, hasNotes, last)
		}
		if !strings.Contains(page.HTML, "<th>Item</th>") {
			t.Fatalf("page %d missing repeated column header", i)
		}
	}
}

func TestPreviewPlaceholders(t *testing.T) {
	doc := sampleDocument(0)
	doc.Sender = nil
	doc.Recipient = nil
	plan := layout.ComputePlan(0, 8)
	pages, err := NewPreviewRenderer().RenderPages(doc, plan)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	html := pages[0].HTML
	for _, want := range []string{"Profile incomplete", "Select a recipient", "No line items"} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing placeholder %q", want)
		}
	}
	// Zero items: subtotal 0, total = tax.
	if !strings.Contains(html, "USD 0.00") {
		t.Fatalf("zero-item page missing zero subtotal")
	}
	if !strings.Contains(html, "USD 5.00") {
		t.Fatalf("zero-item page total should equal tax")
	}
	if strings.Contains(html, "Page 1 of 1") {
		t.Fatalf("single-page preview must not render a page footer")
	}
}

func TestPreviewDraftBadge(t *testing.T) {
	doc := sampleDocument(1)
	plan := layout.ComputePlan(len(doc.Items), 8)
	renderer := NewPreviewRenderer()

	pages, err := renderer.RenderPages(doc, plan)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(pages[0].HTML, "badge-draft") {
		t.Fatalf("draft invoice missing status badge")
	}

	doc.Status = "complete"
	pages, err = renderer.RenderPages(doc, plan)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(pages[0].HTML, "badge-draft") {
		t.Fatalf("complete invoice must not carry the draft badge")
	}
}
