package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/billfold/billfold/internal/invoice/layout"
)

// A4 portrait geometry in millimeters. Pagination is owned by the plan, so
// auto page breaks stay disabled and every coordinate is absolute.
const (
	pdfPageWidth  = 210.0
	pdfPageHeight = 297.0
	pdfMargin     = 15.0
	pdfContentW   = pdfPageWidth - 2*pdfMargin

	pdfColName  = 80.0
	pdfColQty   = 25.0
	pdfColUnit  = 35.0
	pdfColTotal = 40.0

	pdfRowHeight  = 7.0
	pdfDescHeight = 4.0
	pdfLineHeight = 4.5
)

// Export output must be byte-identical across runs for the same input, so
// the document metadata carries a fixed creation date instead of the clock.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFExporter draws invoice pages onto fixed A4 geometry. Stateless; safe
// for concurrent use.
type PDFExporter struct{}

func NewExportRenderer() ExportRenderer {
	return &PDFExporter{}
}

func (r *PDFExporter) Render(doc layout.DocumentView, plan layout.Plan) ([]byte, error) {
	if doc.Sender == nil {
		return nil, ErrMissingSender
	}
	if doc.Recipient == nil {
		return nil, ErrMissingRecipient
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetTitle("Invoice "+doc.InvoiceNumber, true)
	pdf.SetAutoPageBreak(false, 0)

	for _, page := range layout.BuildPages(doc, plan) {
		pdf.AddPage()
		pdf.SetTextColor(17, 24, 39)
		y := drawPDFHeader(pdf, doc)
		if page.ShowParties {
			y = drawPDFParties(pdf, doc, y)
		}
		y = drawPDFItems(pdf, doc, page, y)
		if page.ShowTotals {
			y = drawPDFTotals(pdf, doc, y)
		}
		if page.ShowNotes && doc.Notes != "" {
			drawPDFNotes(pdf, doc, y)
		}
		if page.Count > 1 {
			drawPDFFooter(pdf, page)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPDFHeader(pdf *fpdf.Fpdf, doc layout.DocumentView) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfMargin, 22, "Invoice "+doc.InvoiceNumber)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(pdfMargin, 29, "Issued: "+pdfDate(doc.IssueDate))
	pdf.Text(pdfMargin+50, 29, "Due: "+pdfDate(doc.DueDate))
	if doc.CustomerRef != "" {
		pdf.Text(pdfMargin+100, 29, "Ref: "+doc.CustomerRef)
	}

	pdf.SetDrawColor(17, 24, 39)
	pdf.SetLineWidth(0.5)
	pdf.Line(pdfMargin, 33, pdfPageWidth-pdfMargin, 33)
	return 40
}

func drawPDFParties(pdf *fpdf.Fpdf, doc layout.DocumentView, y float64) float64 {
	leftBottom := drawPDFParty(pdf, pdfMargin, y, "From", doc.Sender)
	rightBottom := drawPDFParty(pdf, pdfMargin+pdfContentW/2, y, "Bill To", doc.Recipient)
	if rightBottom > leftBottom {
		leftBottom = rightBottom
	}
	return leftBottom + 6
}

func drawPDFParty(pdf *fpdf.Fpdf, x, y float64, label string, party *layout.PartyView) float64 {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.Text(x, y, label)
	pdf.SetTextColor(17, 24, 39)

	y += pdfLineHeight
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x, y, party.DisplayName)

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range party.AddressLines {
		y += pdfLineHeight
		pdf.Text(x, y, line)
	}
	if party.Email != "" {
		y += pdfLineHeight
		pdf.Text(x, y, party.Email)
	}
	if party.Phone != "" {
		y += pdfLineHeight
		pdf.Text(x, y, party.Phone)
	}
	return y
}

func drawPDFItems(pdf *fpdf.Fpdf, doc layout.DocumentView, page layout.PageView, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(243, 244, 246)
	pdf.SetXY(pdfMargin, y)
	pdf.CellFormat(pdfColName, pdfRowHeight, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(pdfColQty, pdfRowHeight, "Qty", "", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColUnit, pdfRowHeight, "Unit Cost", "", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColTotal, pdfRowHeight, "Amount", "", 1, "R", true, 0, "")
	y += pdfRowHeight + 1

	if len(page.Items) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetXY(pdfMargin, y)
		pdf.CellFormat(pdfContentW, pdfRowHeight, "No line items", "", 1, "C", false, 0, "")
		return y + pdfRowHeight + 2
	}

	for _, item := range page.Items {
		pdf.SetFont("Helvetica", "", 8)
		var descLines []string
		if item.Description != "" {
			descLines = pdf.SplitText(item.Description, pdfColName-2)
		}

		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(pdfMargin+1, y+5, item.Name)
		pdf.SetXY(pdfMargin+pdfColName, y)
		pdf.CellFormat(pdfColQty, pdfRowHeight, layout.FormatQuantity(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColUnit, pdfRowHeight, layout.FormatMoney(item.UnitCost, doc.Currency), "", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColTotal, pdfRowHeight, layout.FormatMoney(item.LineTotal, doc.Currency), "", 1, "R", false, 0, "")

		rowBottom := y + pdfRowHeight
		if len(descLines) > 0 {
			// Long descriptions wrap inside the row; the row grows and the
			// page's item allocation is unaffected.
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(107, 114, 128)
			for _, line := range descLines {
				pdf.Text(pdfMargin+1, rowBottom+3, line)
				rowBottom += pdfDescHeight
			}
			pdf.SetTextColor(17, 24, 39)
		}

		pdf.SetDrawColor(229, 231, 235)
		pdf.SetLineWidth(0.2)
		pdf.Line(pdfMargin, rowBottom+1, pdfMargin+pdfContentW, rowBottom+1)
		y = rowBottom + 3
	}
	return y + 2
}

func drawPDFTotals(pdf *fpdf.Fpdf, doc layout.DocumentView, y float64) float64 {
	const labelW, valueW = 30.0, 40.0
	x := pdfMargin + pdfContentW - labelW - valueW

	rows := []struct {
		label string
		value int64
		grand bool
	}{
		{"Subtotal", doc.Subtotal, false},
		{"Tax", doc.Tax, false},
		{"Total", doc.Total, true},
	}
	for _, row := range rows {
		style := ""
		if row.grand {
			style = "B"
			pdf.SetDrawColor(17, 24, 39)
			pdf.SetLineWidth(0.3)
			pdf.Line(x, y, pdfMargin+pdfContentW, y)
			y += 1
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetXY(x, y)
		pdf.CellFormat(labelW, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, layout.FormatMoney(row.value, doc.Currency), "", 1, "R", false, 0, "")
		y += 6
	}
	return y + 4
}

func drawPDFNotes(pdf *fpdf.Fpdf, doc layout.DocumentView, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.Text(pdfMargin, y, "Notes")
	pdf.SetTextColor(17, 24, 39)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(pdfMargin, y+2)
	pdf.MultiCell(pdfContentW, pdfLineHeight, doc.Notes, "", "L", false)
}

func drawPDFFooter(pdf *fpdf.Fpdf, page layout.PageView) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.SetXY(pdfMargin, pdfPageHeight-14)
	pdf.CellFormat(pdfContentW, 5, fmt.Sprintf("Page %d of %d", page.Index+1, page.Count), "", 0, "C", false, 0, "")
	pdf.SetTextColor(17, 24, 39)
}

func pdfDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}
