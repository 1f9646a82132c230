package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/FrameShop/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// JobRef is the data encoded into a job ticket's QR code, enough for the
// workshop to look the job up and check the build at the bench.
type JobRef struct {
	JobID      string  `json:"job"`
	CustomerID string  `json:"customer"`
	Created    string  `json:"created"`
	Due        string  `json:"due,omitempty"`
	OuterW     float64 `json:"outer_w_cm"`
	OuterH     float64 `json:"outer_h_cm"`
	Mode       string  `json:"mode"`
	Openings   int     `json:"openings,omitempty"`
}

const (
	ticketQRSize  = 45.0 // mm
	ticketQRImage = 256  // px
)

// NewJobRef collects the QR payload for a job.
func NewJobRef(job model.Job) JobRef {
	ref := JobRef{
		JobID:      job.ID,
		CustomerID: job.CustomerID,
		Created:    job.CreatedAt,
		Due:        job.DueDate,
		OuterW:     job.Dimensions.Outer.WidthCm,
		OuterH:     job.Dimensions.Outer.HeightCm,
		Mode:       string(job.Config.Mode()),
	}
	if job.Config.Mode() == model.ModePro {
		ref.Openings = len(job.Config.OpeningList())
	}
	return ref
}

// JobQRCode returns the PNG bytes of the QR code for a job.
func JobQRCode(job model.Job) ([]byte, error) {
	data, err := json.Marshal(NewJobRef(job))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job reference: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, ticketQRImage)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// ExportJobTicket writes a one-page workshop ticket: QR code, sizes,
// materials and the checklist with tick boxes.
func ExportJobTicket(path string, job model.Job, opts Options) error {
	if job.ID == "" {
		return fmt.Errorf("job has no id")
	}

	qrPNG, err := JobQRCode(job)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	meta := [][2]string{
		{"Job", job.ID},
		{"Created", dateOf(job.CreatedAt)},
		{"Due", job.DueDate},
		{"Status", string(job.Status)},
	}
	y := renderHeader(pdf, tr, "Job Ticket", opts.shopName(), meta)

	imgName := "qr_" + job.ID
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-ticketQRSize, y, ticketQRSize, ticketQRSize, false, imgOpts, 0, "")

	y = renderCustomer(pdf, tr, job.Document, y)
	textW := contentWidth - ticketQRSize - 5

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(textW, 6, "Build", "", 0, "L", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		"Artwork: " + formatDimension(job.Dimensions.Artwork),
		"Visible: " + formatDimension(job.Dimensions.Visible),
		"Outer: " + formatDimension(job.Dimensions.Outer),
	}
	lines = append(lines, describeBuild(job.Document)...)
	for _, m := range job.Config.ActiveMats() {
		lines = append(lines, fmt.Sprintf("Mat border: %.1f cm", m.BorderCm))
	}
	if job.Config.Mode() == model.ModePro {
		for i, o := range job.Config.OpeningList() {
			lines = append(lines, fmt.Sprintf("Opening %d: %s %.1f x %.1f cm at (%.1f, %.1f)",
				i+1, o.Shape, o.WidthCm, o.HeightCm, o.XCm, o.YCm))
		}
	}
	for _, l := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(textW, 5.5, tr(l), "", 0, "L", false, 0, "")
		y += 5.5
	}
	if floor := marginTop + 40 + ticketQRSize; y < floor {
		y = floor
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 6, "Checklist", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	for _, item := range job.Checklist {
		pdf.Rect(marginLeft, y+1, 4, 4, "D")
		if item.Done {
			pdf.Line(marginLeft+0.8, y+3, marginLeft+1.8, y+4.3)
			pdf.Line(marginLeft+1.8, y+4.3, marginLeft+3.4, y+1.6)
		}
		pdf.SetXY(marginLeft+7, y)
		pdf.CellFormat(contentWidth-7, 6, tr(item.Task), "", 0, "L", false, 0, "")
		y += 8
	}

	if job.Notes != "" {
		pdf.SetXY(marginLeft, y+4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentWidth, 5, tr(job.Notes), "", "L", false)
	}
	renderFooter(pdf, opts.shopName())

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build job ticket: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}
