// Package layout holds the pure pagination and page-assembly logic shared by
// the on-screen preview renderer and the PDF export renderer. Everything in
// this package is deterministic and free of I/O so both renderers agree on
// which line items and which structural blocks land on which page.
package layout

// PageSpec describes the layout decisions for a single page.
type PageSpec struct {
	PageIndex   int  `json:"page_index"`
	ItemStart   int  `json:"item_start"`
	ItemEnd     int  `json:"item_end"`
	ShowParties bool `json:"show_parties"`
	ShowTotals  bool `json:"show_totals"`
	ShowNotes   bool `json:"show_notes"`
}

// Plan is the ordered list of per-page layout decisions for one document.
type Plan struct {
	Pages      []PageSpec `json:"pages"`
	TotalPages int        `json:"total_pages"`
	Capacity   int        `json:"capacity"`
}

// ComputePlan partitions validItemCount line items into pages of at most
// pageCapacity items each. The item ranges cover [0, validItemCount) exactly,
// in order, with no gaps or overlaps. The parties block is assigned to the
// first page only; the totals and notes blocks to the last page only. Zero
// items still yield a single page with an empty range so the header, parties
// block and empty state always have somewhere to render.
//
// ComputePlan is a pure function of its two arguments. Callers must pass
// pageCapacity >= 1 and validItemCount >= 0; anything else is a caller bug,
// not a recoverable condition.
func ComputePlan(validItemCount, pageCapacity int) Plan {
	totalPages := (validItemCount + pageCapacity - 1) / pageCapacity
	if totalPages < 1 {
		totalPages = 1
	}

	pages := make([]PageSpec, 0, totalPages)
	for pageIndex := 0; pageIndex < totalPages; pageIndex++ {
		start := pageIndex * pageCapacity
		end := start + pageCapacity
		if end > validItemCount {
			end = validItemCount
		}
		last := pageIndex == totalPages-1
		pages = append(pages, PageSpec{
			PageIndex:   pageIndex,
			ItemStart:   start,
			ItemEnd:     end,
			ShowParties: pageIndex == 0,
			ShowTotals:  last,
			ShowNotes:   last,
		})
	}

	return Plan{
		Pages:      pages,
		TotalPages: totalPages,
		Capacity:   pageCapacity,
	}
}
