package render

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/billfold/billfold/internal/invoice/layout"
)

const previewPageTemplate = `<section class="invoice-page" data-page="{{.Page.Index}}">
  <header class="page-header">
    <div class="heading">
      <h1>Invoice {{.Doc.InvoiceNumber}}</h1>
      {{if eq .Doc.Status "draft"}}<span class="badge badge-draft">Draft</span>{{end}}
    </div>
    <div class="meta">
      <div><span class="label">Issued</span> {{formatDate .Doc.IssueDate}}</div>
      <div><span class="label">Due</span> {{formatDate .Doc.DueDate}}</div>
      {{if .Doc.CustomerRef}}<div><span class="label">Ref</span> {{.Doc.CustomerRef}}</div>{{end}}
    </div>
  </header>

  {{if .Page.ShowParties}}
  <div class="parties">
    <div class="party party-sender">
      <div class="label">From</div>
      {{if .Doc.Sender}}
      <div class="name">{{.Doc.Sender.DisplayName}}</div>
      {{range .Doc.Sender.AddressLines}}<div>{{.}}</div>{{end}}
      <div>{{.Doc.Sender.Email}}</div>
      {{if .Doc.Sender.Phone}}<div>{{.Doc.Sender.Phone}}</div>{{end}}
      {{else}}
      <div class="placeholder">Profile incomplete</div>
      {{end}}
    </div>
    <div class="party party-recipient">
      <div class="label">Bill To</div>
      {{if .Doc.Recipient}}
      <div class="name">{{.Doc.Recipient.DisplayName}}</div>
      {{range .Doc.Recipient.AddressLines}}<div>{{.}}</div>{{end}}
      <div>{{.Doc.Recipient.Email}}</div>
      {{if .Doc.Recipient.Phone}}<div>{{.Doc.Recipient.Phone}}</div>{{end}}
      {{else}}
      <div class="placeholder">Select a recipient</div>
      {{end}}
    </div>
  </div>
  {{end}}

  <table class="items">
    <thead>
      <tr><th>Item</th><th class="num">Qty</th><th class="num">Unit Cost</th><th class="num">Amount</th></tr>
    </thead>
    <tbody>
      {{range .Page.Items}}
      <tr>
        <td>
          <div class="item-name">{{.Name}}</div>
          {{if .Description}}<div class="item-description">{{.Description}}</div>{{end}}
        </td>
        <td class="num">{{formatQuantity .Quantity}}</td>
        <td class="num">{{formatMoney .UnitCost $.Doc.Currency}}</td>
        <td class="num">{{formatMoney .LineTotal $.Doc.Currency}}</td>
      </tr>
      {{else}}
      <tr><td colspan="4" class="placeholder">No line items</td></tr>
      {{end}}
    </tbody>
  </table>

  {{if .Page.ShowTotals}}
  <div class="totals">
    <div><span>Subtotal</span><span>{{formatMoney .Doc.Subtotal .Doc.Currency}}</span></div>
    <div><span>Tax</span><span>{{formatMoney .Doc.Tax .Doc.Currency}}</span></div>
    <div class="grand"><span>Total</span><span>{{formatMoney .Doc.Total .Doc.Currency}}</span></div>
  </div>
  {{end}}

  {{if and .Page.ShowNotes .Doc.Notes}}
  <div class="notes">
    <div class="label">Notes</div>
    {{range paragraphs .Doc.Notes}}<p>{{.}}</p>{{end}}
  </div>
  {{end}}

  {{if gt .Page.Count 1}}
  <footer class="page-footer">Page {{pageNumber .Page.Index}} of {{.Page.Count}}</footer>
  {{end}}
</section>
`

type previewPageData struct {
	Doc  *layout.DocumentView
	Page layout.PageView
}

// HTMLPreview renders invoice pages as standalone markup fragments, one per
// PageSpec. It performs no I/O and keeps no state between calls.
type HTMLPreview struct {
	tpl *template.Template
}

func NewPreviewRenderer() PreviewRenderer {
	funcs := template.FuncMap{
		"formatMoney":    layout.FormatMoney,
		"formatDate":     formatDate,
		"formatQuantity": layout.FormatQuantity,
		"paragraphs":     paragraphs,
		"pageNumber":     func(index int) int { return index + 1 },
	}
	return &HTMLPreview{
		tpl: template.Must(template.New("invoice-page").Funcs(funcs).Parse(previewPageTemplate)),
	}
}

func (r *HTMLPreview) RenderPages(doc layout.DocumentView, plan layout.Plan) ([]Page, error) {
	assembled := layout.BuildPages(doc, plan)
	pages := make([]Page, 0, len(assembled))
	for _, pageView := range assembled {
		var buf bytes.Buffer
		if err := r.tpl.Execute(&buf, previewPageData{Doc: &doc, Page: pageView}); err != nil {
			return nil, err
		}
		pages = append(pages, Page{Index: pageView.Index, HTML: buf.String()})
	}
	return pages, nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func paragraphs(notes string) []string {
	raw := strings.Split(strings.ReplaceAll(notes, "\r\n", "\n"), "\n\n")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
