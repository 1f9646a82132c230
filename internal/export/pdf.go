// Package export writes shop documents to files: quote and invoice PDFs,
// QR-coded job tickets, the quote register spreadsheet and mat-cut DXF files.
package export

import (
	"bytes"
	"fmt"
	"image"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/FrameShop/internal/document"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/render"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	previewMaxW  = 80.0
	previewMaxH  = 80.0
)

// Options carries presentation details that are not part of a record.
type Options struct {
	ShopName       string
	CurrencySymbol string
	// Preview is drawn next to the dimension summary when set.
	Preview image.Image
}

func (o Options) shopName() string {
	if o.ShopName == "" {
		return "FrameShop"
	}
	return o.ShopName
}

func (o Options) money(v float64) string {
	return document.FormatMoney(o.CurrencySymbol, v)
}

// ExportQuotePDF writes a customer quote.
func ExportQuotePDF(path string, q model.Quote, opts Options) error {
	if q.ID == "" {
		return fmt.Errorf("quote has no id")
	}
	meta := [][2]string{
		{"Quote", q.ID},
		{"Date", dateOf(q.CreatedAt)},
		{"Valid until", q.ValidUntil},
	}
	return writeDocumentPDF(path, "Quote", q.Document, meta, opts)
}

// ExportInvoicePDF writes a customer invoice.
func ExportInvoicePDF(path string, inv model.Invoice, opts Options) error {
	if inv.ID == "" {
		return fmt.Errorf("invoice has no id")
	}
	status := "Unpaid"
	if inv.Paid {
		status = "Paid"
	}
	meta := [][2]string{
		{"Invoice", inv.Number},
		{"Date", dateOf(inv.CreatedAt)},
		{"Due", inv.DueDate},
		{"Status", status},
	}
	return writeDocumentPDF(path, "Invoice", inv.Document, meta, opts)
}

func writeDocumentPDF(path, title string, doc model.Document, meta [][2]string, opts Options) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	y := renderHeader(pdf, tr, title, opts.shopName(), meta)
	y = renderCustomer(pdf, tr, doc, y)
	y, err := renderDimensions(pdf, tr, doc, opts.Preview, y)
	if err != nil {
		return err
	}
	y = renderLineItems(pdf, tr, doc, opts, y)
	renderTotals(pdf, tr, doc, opts, y)
	if doc.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetX(marginLeft)
		pdf.MultiCell(contentWidth, 5, tr(doc.Notes), "", "L", false)
	}
	renderFooter(pdf, opts.shopName())

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build %s PDF: %w", title, err)
	}
	return pdf.OutputFileAndClose(path)
}

// renderHeader draws the title block and returns the next free y.
func renderHeader(pdf *fpdf.Fpdf, tr func(string) string, title, shop string, meta [][2]string) float64 {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth/2, 10, tr(shop), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth/2, 10, tr(title), "", 0, "R", false, 0, "")

	y := marginTop + 12
	pdf.SetFont("Helvetica", "", 9)
	for _, kv := range meta {
		pdf.SetXY(pageWidth-marginRight-70, y)
		pdf.CellFormat(25, 5, tr(kv[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(45, 5, tr(kv[1]), "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		y += 5
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, y+2, pageWidth-marginRight, y+2)
	return y + 6
}

func renderCustomer(pdf *fpdf.Fpdf, tr func(string) string, doc model.Document, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, "Customer", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y+6)
	name := doc.CustomerName
	if name == "" {
		name = "-"
	}
	pdf.CellFormat(contentWidth, 5, tr(name), "", 0, "L", false, 0, "")
	return y + 14
}

// renderDimensions draws the preview image (if any) and the size summary.
func renderDimensions(pdf *fpdf.Fpdf, tr func(string) string, doc model.Document, preview image.Image, y float64) (float64, error) {
	textX := marginLeft
	bottom := y

	if preview != nil && preview.Bounds().Dx() > 0 && preview.Bounds().Dy() > 0 {
		var buf bytes.Buffer
		if err := render.EncodePNG(&buf, preview); err != nil {
			return y, fmt.Errorf("failed to encode preview: %w", err)
		}
		b := preview.Bounds()
		w, h := fitBox(float64(b.Dx()), float64(b.Dy()), previewMaxW, previewMaxH)
		imgName := "preview_" + doc.ID
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imgName, opts, &buf)
		pdf.ImageOptions(imgName, marginLeft, y, w, h, false, opts, 0, "")
		textX = marginLeft + w + 8
		bottom = y + h
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(textX, y)
	pdf.CellFormat(80, 6, "Dimensions", "", 0, "L", false, 0, "")
	ty := y + 7

	pdf.SetFont("Helvetica", "", 9)
	rows := []struct {
		label string
		d     model.Dimension
	}{
		{"Artwork", doc.Dimensions.Artwork},
		{"Visible", doc.Dimensions.Visible},
		{"Outer", doc.Dimensions.Outer},
	}
	for _, r := range rows {
		pdf.SetXY(textX, ty)
		pdf.CellFormat(22, 5, r.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 5, tr(formatDimension(r.d)), "", 0, "L", false, 0, "")
		ty += 5
	}

	ty += 3
	for _, line := range describeBuild(doc) {
		pdf.SetXY(textX, ty)
		pdf.CellFormat(92, 5, tr(line), "", 0, "L", false, 0, "")
		ty += 5
	}

	if ty > bottom {
		bottom = ty
	}
	return bottom + 6, nil
}

func renderLineItems(pdf *fpdf.Fpdf, tr func(string) string, doc model.Document, opts Options, y float64) float64 {
	colWidths := []float64{40, 105, 35}
	headers := []string{"Item", "Detail", "Amount"}
	aligns := []string{"L", "L", "R"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, aligns[i], true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, item := range doc.LineItems {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{item.Label, item.Detail, opts.money(item.Amount)}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, aligns[j], true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
	return y + 4
}

func renderTotals(pdf *fpdf.Fpdf, tr func(string) string, doc model.Document, opts Options, y float64) {
	totals := [][2]string{
		{"Subtotal", opts.money(doc.Subtotal)},
		{"Tax", opts.money(doc.Tax)},
		{"Total", opts.money(doc.Total)},
	}
	x := pageWidth - marginRight - 75
	for i, kv := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetXY(x, y)
		pdf.CellFormat(40, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(kv[1]), "", 0, "R", false, 0, "")
		y += 6
	}
	pdf.SetXY(marginLeft, y)
}

func renderFooter(pdf *fpdf.Fpdf, shop string) {
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by "+shop, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// describeBuild lists the selected materials in reading order.
func describeBuild(doc model.Document) []string {
	var lines []string
	if doc.Names.Frame != "" {
		lines = append(lines, fmt.Sprintf("Frame: %s (%.1f cm face)", doc.Names.Frame, doc.Config.FaceWidthCm))
	}
	for i, m := range doc.Names.Mats {
		if m == "" {
			m = "unlisted mat"
		}
		lines = append(lines, fmt.Sprintf("Mat %d: %s", i+1, m))
	}
	if doc.Config.Mode() == model.ModePro {
		lines = append(lines, fmt.Sprintf("Openings: %d", len(doc.Config.OpeningList())))
	}
	if doc.Names.Glazing != "" {
		lines = append(lines, "Glazing: "+doc.Names.Glazing)
	}
	if doc.Names.PrintMaterial != "" {
		lines = append(lines, "Print: "+doc.Names.PrintMaterial)
	}
	return lines
}

func formatDimension(d model.Dimension) string {
	return fmt.Sprintf("%.1f x %.1f cm (%.2f x %.2f in)", d.WidthCm, d.HeightCm, d.WidthIn, d.HeightIn)
}

// fitBox scales w x h to fit inside maxW x maxH, keeping the aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	s := maxW / w
	if hs := maxH / h; hs < s {
		s = hs
	}
	return w * s, h * s
}

// dateOf trims an RFC 3339 timestamp to its date.
func dateOf(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
