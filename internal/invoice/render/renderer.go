// Package render holds the two presentation backends for invoice documents:
// an HTML preview re-run on every edit and a PDF exporter producing the
// downloadable artifact. Both consume the same layout.Plan and the same
// assembled pages, so the structural decisions (which items and blocks appear
// on which page) can never drift between them.
package render

import (
	"errors"

	"github.com/billfold/billfold/internal/invoice/layout"
)

// Per-target page capacities. Preview and export target different visual
// page sizes, so they carry different capacities; each value is fixed so a
// given target always paginates the same way.
const (
	PreviewPageCapacity = 8
	ExportPageCapacity  = 10
)

// Page is one rendered preview page.
type Page struct {
	Index int    `json:"index"`
	HTML  string `json:"html"`
}

// PreviewRenderer renders a document into per-page markup for on-screen
// display. Implementations must be side-effect free and cheap enough to run
// on every keystroke.
type PreviewRenderer interface {
	RenderPages(doc layout.DocumentView, plan layout.Plan) ([]Page, error)
}

// ExportRenderer renders a document into a binary PDF. Implementations must
// be deterministic: identical input yields byte-identical output.
type ExportRenderer interface {
	Render(doc layout.DocumentView, plan layout.Plan) ([]byte, error)
}

// Export refuses to substitute placeholders for required parties; a missing
// party fails the render instead of producing a misleading document.
var (
	ErrMissingSender    = errors.New("missing_sender")
	ErrMissingRecipient = errors.New("missing_recipient")
)
