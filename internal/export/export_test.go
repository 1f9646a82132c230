package export

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FrameShop/internal/document"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/pricing"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		Frames:   []model.CatalogItem{{ID: "f1", Name: "Oak", Kind: model.KindFrame, Price: 120, FaceWidthCm: 2}},
		Mats:     []model.CatalogItem{{ID: "m1", Name: "White", Kind: model.KindMat, Price: 45}, {ID: "m2", Name: "Navy", Kind: model.KindMat, Price: 52}},
		Glazing:  []model.CatalogItem{{ID: "g1", Name: "Glass", Kind: model.KindGlazing, Price: 250}},
		Settings: model.CatalogSettings{LabourBase: 120, MarginMultiplier: 1.2, TaxRate: 0.2, CurrencyCode: "EUR", CurrencySymbol: "€"},
	}
}

func stackedConfig() model.Configuration {
	cfg := model.NewConfiguration()
	cfg.FrameID = "f1"
	cfg.GlazingID = "g1"
	cfg.Mats = []model.MatLayer{{MatID: "m1", BorderCm: 5}, {MatID: "m2", BorderCm: 2}}
	return cfg
}

func proConfig() model.Configuration {
	cfg := stackedConfig()
	cfg.Layout = model.Openings{Items: []model.Opening{
		{ID: "r", Shape: model.ShapeRect, XCm: 20, YCm: 10, WidthCm: 10, HeightCm: 8},
		{ID: "c", Shape: model.ShapeCircle, XCm: 5, YCm: 5, WidthCm: 10, HeightCm: 10},
		{ID: "o", Shape: model.ShapeOval, XCm: 5, YCm: 25, WidthCm: 12, HeightCm: 9},
	}}
	return cfg
}

func testBuilder(cat model.Catalog) *document.Builder {
	b := document.NewBuilder(cat)
	b.Now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	b.NewID = func() string { return "doc00001" }
	return b
}

func testInput(cfg model.Configuration, cat model.Catalog) document.Input {
	return document.Input{
		Config:   cfg,
		Costs:    pricing.Compute(cfg, cat),
		Customer: model.Customer{ID: "c1", Name: "Zoë Müller"},
		Notes:    "Hang with D-rings.",
	}
}

func previewImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{R: 0xb0, G: 0x88, B: 0x50, A: 0xff})
		}
	}
	return img
}

func assertNonEmptyFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "file was not created")
	assert.Greater(t, info.Size(), minSize)
}

// ─── PDF ───────────────────────────────────────────────────

func TestExportQuotePDF_CreatesFile(t *testing.T) {
	cat := testCatalog()
	q := testBuilder(cat).Quote(testInput(stackedConfig(), cat))
	path := filepath.Join(t.TempDir(), "quote.pdf")

	require.NoError(t, ExportQuotePDF(path, q, Options{ShopName: "Corner Frames", CurrencySymbol: "€", Preview: previewImage()}))
	assertNonEmptyFile(t, path, 500)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportQuotePDF_WithoutPreview(t *testing.T) {
	cat := testCatalog()
	q := testBuilder(cat).Quote(testInput(proConfig(), cat))
	path := filepath.Join(t.TempDir(), "quote.pdf")

	require.NoError(t, ExportQuotePDF(path, q, Options{CurrencySymbol: "€"}))
	assertNonEmptyFile(t, path, 500)
}

func TestExportQuotePDF_RejectsEmptyRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.pdf")
	assert.Error(t, ExportQuotePDF(path, model.Quote{}, Options{}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExportInvoicePDF_CreatesFile(t *testing.T) {
	cat := testCatalog()
	inv := testBuilder(cat).Invoice(testInput(stackedConfig(), cat), 7)
	path := filepath.Join(t.TempDir(), "invoice.pdf")

	require.NoError(t, ExportInvoicePDF(path, inv, Options{CurrencySymbol: "€"}))
	assertNonEmptyFile(t, path, 500)
}

func TestFitBox(t *testing.T) {
	w, h := fitBox(200, 100, 80, 80)
	assert.InDelta(t, 80, w, 1e-9)
	assert.InDelta(t, 40, h, 1e-9)

	w, h = fitBox(50, 100, 80, 80)
	assert.InDelta(t, 40, w, 1e-9)
	assert.InDelta(t, 80, h, 1e-9)

	w, h = fitBox(0, 100, 80, 80)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestDescribeBuild(t *testing.T) {
	cat := testCatalog()
	q := testBuilder(cat).Quote(testInput(proConfig(), cat))
	lines := describeBuild(q.Document)
	assert.Equal(t, []string{
		"Frame: Oak (2.0 cm face)",
		"Mat 1: White",
		"Mat 2: Navy",
		"Openings: 3",
		"Glazing: Glass",
	}, lines)
}

// ─── Job ticket ────────────────────────────────────────────

func TestJobRef(t *testing.T) {
	cat := testCatalog()
	job := testBuilder(cat).Job(testInput(proConfig(), cat))

	ref := NewJobRef(job)
	assert.Equal(t, "doc00001", ref.JobID)
	assert.Equal(t, "c1", ref.CustomerID)
	assert.Equal(t, "pro", ref.Mode)
	assert.Equal(t, 3, ref.Openings)
	assert.Equal(t, "2026-03-09", ref.Due)
	// 40 + 2*7 + 2*2 = 58 by 30 + 14 + 4 = 48
	assert.InDelta(t, 58, ref.OuterW, 1e-9)
	assert.InDelta(t, 48, ref.OuterH, 1e-9)

	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"job":"doc00001"`)
}

func TestJobQRCode_IsPNG(t *testing.T) {
	cat := testCatalog()
	job := testBuilder(cat).Job(testInput(stackedConfig(), cat))

	png, err := JobQRCode(job)
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}

func TestExportJobTicket_CreatesFile(t *testing.T) {
	cat := testCatalog()
	job := testBuilder(cat).Job(testInput(proConfig(), cat))
	job.Checklist[0].Done = true
	path := filepath.Join(t.TempDir(), "ticket.pdf")

	require.NoError(t, ExportJobTicket(path, job, Options{ShopName: "Corner Frames"}))
	assertNonEmptyFile(t, path, 500)
}

func TestExportJobTicket_RejectsEmptyRecord(t *testing.T) {
	assert.Error(t, ExportJobTicket(filepath.Join(t.TempDir(), "t.pdf"), model.Job{}, Options{}))
}

// ─── Quote register ────────────────────────────────────────

func TestExportQuoteRegister(t *testing.T) {
	cat := testCatalog()
	b := testBuilder(cat)
	ids := []string{"q1", "q2"}
	n := 0
	b.NewID = func() string { n++; return ids[n-1] }

	quotes := []model.Quote{
		b.Quote(testInput(stackedConfig(), cat)),
		b.Quote(testInput(proConfig(), cat)),
	}
	path := filepath.Join(t.TempDir(), "register.xlsx")
	require.NoError(t, ExportQuoteRegister(path, quotes))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{registerSheet}, f.GetSheetList())
	rows, err := f.GetRows(registerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, registerHeaders, rows[0])
	assert.Equal(t, "q1", rows[1][0])
	assert.Equal(t, "Zoë Müller", rows[1][3])
	assert.Equal(t, "White, Navy", rows[1][5])
	assert.Equal(t, "Total", rows[3][0])

	formula, err := f.GetCellFormula(registerSheet, "L4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(L2:L3)", formula)
}

func TestExportQuoteRegister_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "register.xlsx")
	require.NoError(t, ExportQuoteRegister(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(registerSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// ─── Mat-cut DXF ───────────────────────────────────────────

func TestMatCutDrawing_Stacked(t *testing.T) {
	d, err := MatCutDrawing(stackedConfig())
	require.NoError(t, err)

	var polys []*entity.LwPolyline
	for _, e := range d.Entities() {
		if p, ok := e.(*entity.LwPolyline); ok {
			polys = append(polys, p)
		}
	}
	// board + window for each of the two mats
	require.Len(t, polys, 4)

	// Visible area 54 x 44 cm. The second board starts at 540 + 20 mm and its
	// window is the 40 x 30 cm artwork, 70 mm in from every edge.
	window := polys[3].Vertices
	require.Len(t, window, 4)
	assert.InDelta(t, 630, window[0][0], 1e-6)
	assert.InDelta(t, 370, window[0][1], 1e-6)
	assert.InDelta(t, 1030, window[2][0], 1e-6)
	assert.InDelta(t, 70, window[2][1], 1e-6)

	// The first mat's window leaves a 50 mm border.
	first := polys[1].Vertices
	assert.InDelta(t, 50, first[0][0], 1e-6)
	assert.InDelta(t, 390, first[0][1], 1e-6)
}

func TestMatCutDrawing_Pro(t *testing.T) {
	d, err := MatCutDrawing(proConfig())
	require.NoError(t, err)

	var polys []*entity.LwPolyline
	var circles []*entity.Circle
	for _, e := range d.Entities() {
		switch v := e.(type) {
		case *entity.LwPolyline:
			polys = append(polys, v)
		case *entity.Circle:
			circles = append(circles, v)
		}
	}
	// board, rect opening, sampled oval
	require.Len(t, polys, 3)
	require.Len(t, circles, 1)
	assert.Len(t, polys[2].Vertices, ovalSegments)

	c := circles[0]
	assert.InDelta(t, 100, c.Center[0], 1e-6)
	assert.InDelta(t, 340, c.Center[1], 1e-6)
	assert.InDelta(t, 50, c.Radius, 1e-6)
}

func TestMatCutDrawing_NoMats(t *testing.T) {
	_, err := MatCutDrawing(model.NewConfiguration())
	assert.Error(t, err)
}

func TestExportMatCutDXF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcut.dxf")
	require.NoError(t, ExportMatCutDXF(path, proConfig()))
	assertNonEmptyFile(t, path, 100)
}
