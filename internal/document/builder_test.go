package document

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/pricing"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		Frames:         []model.CatalogItem{{ID: "f1", Name: "Oak", Kind: model.KindFrame, Price: 120}},
		Mats:           []model.CatalogItem{{ID: "m1", Name: "White", Kind: model.KindMat, Price: 45}},
		Glazing:        []model.CatalogItem{{ID: "g1", Name: "Glass", Kind: model.KindGlazing, Price: 250}},
		PrintMaterials: []model.CatalogItem{{ID: "p1", Name: "Paper", Kind: model.KindPrintMaterial, Price: 60}},
		Settings: model.CatalogSettings{
			LabourBase:       120,
			MarginMultiplier: 1,
			CurrencyCode:     "EUR",
			CurrencySymbol:   "€",
		},
	}
}

func testConfig() model.Configuration {
	cfg := model.NewConfiguration()
	cfg.ArtworkWidthCm, cfg.ArtworkHeightCm = 40, 30
	cfg.FrameID = "f1"
	cfg.GlazingID = "g1"
	return cfg
}

func fixedBuilder() *Builder {
	b := NewBuilder(testCatalog())
	b.Now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	n := 0
	b.NewID = func() string { n++; return "id" + string(rune('0'+n)) }
	return b
}

func inputFor(cfg model.Configuration, cat model.Catalog) Input {
	return Input{
		Config:   cfg,
		Costs:    pricing.Compute(cfg, cat),
		Customer: model.Customer{ID: "c1", Name: "Ada"},
	}
}

func TestQuoteSnapshot(t *testing.T) {
	b := fixedBuilder()
	cfg := testConfig()
	q := b.Quote(inputFor(cfg, b.Catalog))

	assert.Equal(t, "id1", q.ID)
	assert.Equal(t, "c1", q.CustomerID)
	assert.Equal(t, "Ada", q.CustomerName)
	assert.Equal(t, "2026-03-31", q.ValidUntil)
	assert.Equal(t, "EUR", q.Currency)
	assert.Equal(t, 318.0, q.Total)
	assert.Equal(t, "Oak", q.Names.Frame)
	assert.Equal(t, "Glass", q.Names.Glazing)

	require.Len(t, q.LineItems, 3)
	assert.Equal(t, model.LineItem{Label: "Frame", Detail: "Oak, 1.40 m", Amount: 168}, q.LineItems[0])
	assert.Equal(t, "Glazing", q.LineItems[1].Label)
	assert.Equal(t, "Labour", q.LineItems[2].Label)

	// the record owns its copy of the configuration
	cfg.FrameID = "changed"
	assert.Equal(t, "f1", q.Config.FrameID)
}

func TestLineItemsRoundToCentsAndShowMargin(t *testing.T) {
	cat := testCatalog()
	cat.Settings.MarginMultiplier = 1.1
	cat.Settings.TaxRate = 0.19
	b := fixedBuilder()
	b.Catalog = cat

	cfg := testConfig()
	cfg.ArtworkWidthCm = 33.3
	cfg.Mats = []model.MatLayer{{MatID: "m1", BorderCm: 4.7}}
	q := b.Quote(inputFor(cfg, cat))

	var sum float64
	for _, li := range q.LineItems {
		assert.Equal(t, RoundCents(li.Amount), li.Amount, li.Label)
		sum += li.Amount
	}
	assert.Equal(t, "Margin", q.LineItems[len(q.LineItems)-1].Label)
	assert.InDelta(t, q.Subtotal, sum, 0.05)
	assert.Equal(t, RoundCents(q.Costs.Total), q.Total)
	assert.Equal(t, []string{"White"}, q.Names.Mats)
}

func TestDimensionsInBothUnits(t *testing.T) {
	cfg := testConfig()
	cfg.FaceWidthCm = 2.54
	cfg.Mats = []model.MatLayer{{MatID: "m1", BorderCm: 5}}

	d := Dimensions(cfg)
	assert.Equal(t, 40.0, d.Artwork.WidthCm)
	assert.Equal(t, 15.75, d.Artwork.WidthIn)
	assert.Equal(t, 50.0, d.Visible.WidthCm)
	assert.Equal(t, 55.08, d.Outer.WidthCm)
	assert.Equal(t, 21.69, d.Outer.WidthIn)
}

func TestJobChecklist(t *testing.T) {
	b := fixedBuilder()
	cfg := testConfig()
	cfg.IncludeBacker = true
	cfg.Mats = []model.MatLayer{{MatID: "m1", BorderCm: 5}}
	cfg.Layout = model.Openings{Items: []model.Opening{{ID: "a"}, {ID: "b"}}}

	j := b.Job(inputFor(cfg, b.Catalog))
	assert.Equal(t, model.JobPending, j.Status)
	assert.Equal(t, "2026-03-08", j.DueDate)

	var tasks []string
	for _, c := range j.Checklist {
		assert.False(t, c.Done)
		tasks = append(tasks, c.Task)
	}
	assert.Equal(t, []string{
		"Cut mat board with 2 openings",
		"Cut and join moulding",
		"Cut and clean glazing",
		"Cut backer board",
		"Mount artwork",
		"Assemble and seal",
		"Quality check",
	}, tasks)
}

func TestInvoiceNumberAndTerms(t *testing.T) {
	b := fixedBuilder()
	inv := b.Invoice(inputFor(testConfig(), b.Catalog), 7)
	assert.Equal(t, "INV-2026-0007", inv.Number)
	assert.Equal(t, "2026-03-15", inv.DueDate)
	assert.False(t, inv.Paid)
}

func TestMoneyHelpers(t *testing.T) {
	assert.Equal(t, 2.68, RoundCents(2.675))
	assert.Equal(t, "€318.00", FormatMoney("€", 318))
	assert.Equal(t, "-$1.50", FormatMoney("$", -1.499))
	assert.Equal(t, 0.3, SumCents(0.1, 0.2))

	assert.Equal(t, 0.0, RoundCents(math.NaN()))
	assert.Equal(t, "€0.00", FormatMoney("€", math.Inf(1)))
	assert.Equal(t, 1.25, SumCents(1.25, math.NaN(), math.Inf(-1)))
}

func TestDocumentsFromHugeArtwork(t *testing.T) {
	b := fixedBuilder()
	b.Catalog.Glazing[0].Price = 0
	cfg := testConfig()
	cfg.ArtworkWidthCm, cfg.ArtworkHeightCm = 1e300, 1e300
	in := inputFor(cfg, b.Catalog)

	require.NotPanics(t, func() {
		q := b.Quote(in)
		assert.False(t, math.IsNaN(q.Costs.Total) || math.IsInf(q.Costs.Total, 0))
		b.Job(in)
		b.Invoice(in, 1)
	})

	in.Costs.Glazing = math.NaN()
	in.Costs.Total = math.Inf(1)
	require.NotPanics(t, func() { b.Quote(in) })
}
