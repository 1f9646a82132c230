// Package pricing derives the cost of a frame build from its configuration
// and the shop catalog. Everything here is a pure function of its inputs.
package pricing

import (
	"math"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// Usage is the material quantity a build consumes, before prices.
type Usage struct {
	VisibleWidthCm  float64 `json:"visible_width_cm"`
	VisibleHeightCm float64 `json:"visible_height_cm"`
	OuterWidthCm    float64 `json:"outer_width_cm"`
	OuterHeightCm   float64 `json:"outer_height_cm"`
	FrameMeters     float64 `json:"frame_meters"` // moulding length along the visible perimeter
	VisibleSqM      float64 `json:"visible_sqm"`  // glazing, each mat and backer
	ArtworkSqM      float64 `json:"artwork_sqm"`  // print material
	ActiveMatCount  int     `json:"active_mat_count"`
}

// MeasureUsage computes the quantities pricing is based on. Invalid artwork
// dimensions count as zero and lengths are capped at geom.MaxLengthCm.
func MeasureUsage(cfg model.Configuration) Usage {
	artW, artH := length(cfg.ArtworkWidthCm), length(cfg.ArtworkHeightCm)
	border := 0.0
	mats := cfg.ActiveMats()
	for _, m := range mats {
		border += length(m.BorderCm)
	}
	face := length(cfg.FaceWidthCm)

	visW, visH := artW+2*border, artH+2*border
	return Usage{
		VisibleWidthCm:  visW,
		VisibleHeightCm: visH,
		OuterWidthCm:    visW + 2*face,
		OuterHeightCm:   visH + 2*face,
		FrameMeters:     geom.PerimeterMeters(visW, visH),
		VisibleSqM:      geom.AreaSqM(visW, visH),
		ArtworkSqM:      geom.AreaSqM(artW, artH),
		ActiveMatCount:  len(mats),
	}
}

// Compute prices a configuration against a catalog.
//
// Each active mat is charged over the full visible area, the same footprint
// as glazing and backer. Missing catalog entries price to zero, and a line
// or total that overflows is reported as zero.
func Compute(cfg model.Configuration, cat model.Catalog) model.CostBreakdown {
	u := MeasureUsage(cfg)
	s := cat.Settings

	var b model.CostBreakdown
	if f, ok := cat.Frame(cfg.FrameID); ok {
		b.Frame = finite(price(f) * u.FrameMeters)
	}
	if g, ok := cat.GlazingItem(cfg.GlazingID); ok {
		b.Glazing = finite(price(g) * u.VisibleSqM)
	}
	for i, layer := range cfg.ActiveMats() {
		if m, ok := cat.Mat(layer.MatID); ok {
			b.Mats[i] = finite(price(m) * u.VisibleSqM)
		}
	}
	if cfg.IncludePrint {
		if p, ok := cat.PrintMaterial(cfg.PrintMaterialID); ok {
			b.Printing = finite(price(p) * u.ArtworkSqM)
		}
	}
	if cfg.IncludeBacker {
		b.Backer = finite(sanitize(s.BackerPricePerSqM) * u.VisibleSqM)
	}
	b.Labour = sanitize(s.LabourBase)

	b.SubtotalRaw = finite(b.Frame + b.Glazing + b.MatsTotal() + b.Printing + b.Backer + b.Labour)
	b.Subtotal = finite(b.SubtotalRaw * multiplier(s.MarginMultiplier))
	b.Tax = finite(b.Subtotal * sanitize(s.TaxRate))
	b.Total = finite(b.Subtotal + b.Tax)
	return b
}

func price(it model.CatalogItem) float64 {
	return sanitize(it.Price)
}

// sanitize maps non-finite and negative inputs to zero.
func sanitize(v float64) float64 {
	if !geom.Finite(v) || v < 0 {
		return 0
	}
	return v
}

// length is sanitize with lengths capped at geom.MaxLengthCm.
func length(v float64) float64 {
	return math.Min(sanitize(v), geom.MaxLengthCm)
}

func finite(v float64) float64 {
	if !geom.Finite(v) {
		return 0
	}
	return v
}

// multiplier treats an unset or invalid margin as 1.
func multiplier(v float64) float64 {
	if !geom.Positive(v) {
		return 1
	}
	return v
}
