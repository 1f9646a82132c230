// Package document snapshots a configuration and its computed costs into
// quote, job and invoice records and hands them to the stores.
package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/pricing"
)

// Input is what a document is built from. Costs must be the breakdown the
// pricing engine produced for Config; nothing is recomputed here.
type Input struct {
	Config   model.Configuration
	Costs    model.CostBreakdown
	Customer model.Customer
	Notes    string
}

// Builder assembles records. Its clock and id source are replaceable for
// tests.
type Builder struct {
	Catalog       model.Catalog
	Now           func() time.Time
	NewID         func() string
	QuoteValidity time.Duration
	PaymentTerms  time.Duration
	JobLeadTime   time.Duration
}

// NewBuilder creates a builder with 30 day quotes, 14 day payment terms and
// a 7 day workshop lead time.
func NewBuilder(cat model.Catalog) *Builder {
	return &Builder{
		Catalog:       cat,
		Now:           time.Now,
		NewID:         func() string { return uuid.New().String()[:8] },
		QuoteValidity: 30 * 24 * time.Hour,
		PaymentTerms:  14 * 24 * time.Hour,
		JobLeadTime:   7 * 24 * time.Hour,
	}
}

// Quote builds a quote record.
func (b *Builder) Quote(in Input) model.Quote {
	now := b.Now().UTC()
	return model.Quote{
		Document:   b.document(in, now),
		ValidUntil: now.Add(b.QuoteValidity).Format(time.DateOnly),
	}
}

// Job builds a workshop job with a checklist for the configuration.
func (b *Builder) Job(in Input) model.Job {
	now := b.Now().UTC()
	return model.Job{
		Document:  b.document(in, now),
		Status:    model.JobPending,
		Checklist: Checklist(in.Config),
		DueDate:   now.Add(b.JobLeadTime).Format(time.DateOnly),
	}
}

// Invoice builds an invoice with the given sequence number.
func (b *Builder) Invoice(in Input, seq int) model.Invoice {
	now := b.Now().UTC()
	return model.Invoice{
		Document: b.document(in, now),
		Number:   fmt.Sprintf("INV-%d-%04d", now.Year(), seq),
		DueDate:  now.Add(b.PaymentTerms).Format(time.DateOnly),
	}
}

func (b *Builder) document(in Input, now time.Time) model.Document {
	cfg := in.Config.Clone()
	s := b.Catalog.Settings
	return model.Document{
		ID:           b.NewID(),
		CustomerID:   in.Customer.ID,
		CustomerName: in.Customer.Name,
		CreatedAt:    now.Format(time.RFC3339),
		Currency:     s.CurrencyCode,
		Config:       cfg,
		Costs:        in.Costs,
		LineItems:    b.LineItems(cfg, in.Costs),
		Dimensions:   Dimensions(cfg),
		Names:        b.Names(cfg),
		Subtotal:     RoundCents(in.Costs.Subtotal),
		Tax:          RoundCents(in.Costs.Tax),
		Total:        RoundCents(in.Costs.Total),
		Notes:        in.Notes,
	}
}

// LineItems lists every non-zero cost line rounded to cents, with a margin
// line when the margin multiplier changes the subtotal.
func (b *Builder) LineItems(cfg model.Configuration, costs model.CostBreakdown) []model.LineItem {
	u := pricing.MeasureUsage(cfg)
	names := b.Names(cfg)
	detail := map[string]string{
		"Frame":    withQty(names.Frame, fmt.Sprintf("%.2f m", u.FrameMeters)),
		"Glazing":  withQty(names.Glazing, fmt.Sprintf("%.3f m²", u.VisibleSqM)),
		"Printing": withQty(names.PrintMaterial, fmt.Sprintf("%.3f m²", u.ArtworkSqM)),
		"Backer":   fmt.Sprintf("%.3f m²", u.VisibleSqM),
	}
	for i, n := range names.Mats {
		detail[fmt.Sprintf("Mat %d", i+1)] = withQty(n, fmt.Sprintf("%.3f m²", u.VisibleSqM))
	}

	var items []model.LineItem
	for _, l := range costs.Lines() {
		if l.Amount == 0 {
			continue
		}
		items = append(items, model.LineItem{Label: l.Label, Detail: detail[l.Label], Amount: RoundCents(l.Amount)})
	}
	margin := amount(costs.Subtotal).Sub(amount(costs.SubtotalRaw)).Round(2)
	if !margin.IsZero() {
		items = append(items, model.LineItem{Label: "Margin", Amount: margin.InexactFloat64()})
	}
	return items
}

func withQty(name, qty string) string {
	if name == "" {
		return qty
	}
	return name + ", " + qty
}

// Names resolves the display names of the selected catalog items. Missing
// items are left blank.
func (b *Builder) Names(cfg model.Configuration) model.SelectedNames {
	var n model.SelectedNames
	if f, ok := b.Catalog.Frame(cfg.FrameID); ok {
		n.Frame = f.Name
	}
	if g, ok := b.Catalog.GlazingItem(cfg.GlazingID); ok {
		n.Glazing = g.Name
	}
	if cfg.IncludePrint {
		if p, ok := b.Catalog.PrintMaterial(cfg.PrintMaterialID); ok {
			n.PrintMaterial = p.Name
		}
	}
	for _, layer := range cfg.ActiveMats() {
		name := ""
		if m, ok := b.Catalog.Mat(layer.MatID); ok {
			name = m.Name
		}
		n.Mats = append(n.Mats, name)
	}
	return n
}

// Dimensions summarises the artwork, visible and outer sizes in cm and
// inches, rounded to two decimals.
func Dimensions(cfg model.Configuration) model.DimensionSummary {
	u := pricing.MeasureUsage(cfg)
	return model.DimensionSummary{
		Artwork: dimension(cfg.ArtworkWidthCm, cfg.ArtworkHeightCm),
		Visible: dimension(u.VisibleWidthCm, u.VisibleHeightCm),
		Outer:   dimension(u.OuterWidthCm, u.OuterHeightCm),
	}
}

func dimension(w, h float64) model.Dimension {
	if !geom.Finite(w) {
		w = 0
	}
	if !geom.Finite(h) {
		h = 0
	}
	return model.Dimension{
		WidthCm:  RoundCents(w),
		HeightCm: RoundCents(h),
		WidthIn:  RoundCents(geom.CmToIn(w)),
		HeightIn: RoundCents(geom.CmToIn(h)),
	}
}

// Checklist returns the workshop steps for a configuration.
func Checklist(cfg model.Configuration) []model.ChecklistItem {
	var steps []string
	if cfg.IncludePrint {
		steps = append(steps, "Print artwork")
	}
	if n := len(cfg.ActiveMats()); n > 0 {
		if cfg.Mode() == model.ModePro {
			steps = append(steps, fmt.Sprintf("Cut mat board with %d openings", len(cfg.OpeningList())))
		} else {
			steps = append(steps, fmt.Sprintf("Cut %d mat(s)", n))
		}
	}
	if cfg.FrameID != "" {
		steps = append(steps, "Cut and join moulding")
	}
	if cfg.GlazingID != "" {
		steps = append(steps, "Cut and clean glazing")
	}
	if cfg.IncludeBacker {
		steps = append(steps, "Cut backer board")
	}
	steps = append(steps, "Mount artwork", "Assemble and seal", "Quality check")

	items := make([]model.ChecklistItem, len(steps))
	for i, s := range steps {
		items[i] = model.ChecklistItem{Task: s}
	}
	return items
}
