package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FrameShop/internal/document"
	"github.com/piwi3910/FrameShop/internal/model"
)

// costRow is one label/amount pair of the cost panel.
type costRow struct {
	label  string
	amount string
	bold   bool
}

// costRows formats a breakdown for display: material and labour lines,
// then subtotal, tax and total.
func costRows(b model.CostBreakdown, settings model.CatalogSettings) []costRow {
	money := func(v float64) string { return document.FormatMoney(settings.CurrencySymbol, v) }
	var rows []costRow
	for _, l := range b.Lines() {
		rows = append(rows, costRow{label: l.Label, amount: money(l.Amount)})
	}
	rows = append(rows,
		costRow{label: "Subtotal", amount: money(b.Subtotal)},
		costRow{label: fmt.Sprintf("Tax (%.0f%%)", settings.TaxRate*100), amount: money(b.Tax)},
		costRow{label: "Total", amount: money(b.Total), bold: true},
	)
	return rows
}

// dimensionText summarises the visible and outer size of a build.
func dimensionText(cfg model.Configuration) string {
	d := document.Dimensions(cfg)
	return fmt.Sprintf("Visible %.1f x %.1f cm · Outer %.1f x %.1f cm (%.1f x %.1f in)",
		d.Visible.WidthCm, d.Visible.HeightCm,
		d.Outer.WidthCm, d.Outer.HeightCm, d.Outer.WidthIn, d.Outer.HeightIn)
}

func (a *App) buildCostPanel() fyne.CanvasObject {
	a.costPanel = container.NewGridWithColumns(2)
	a.dimLabel = widget.NewLabel("")
	a.dimLabel.Wrapping = fyne.TextWrapWord
	return widget.NewCard("Price", "", container.NewVBox(a.costPanel, a.dimLabel))
}

func (a *App) updateCostPanel() {
	if a.costPanel == nil {
		return
	}
	a.costPanel.RemoveAll()
	for _, r := range costRows(a.costs, a.catalog.Settings) {
		style := fyne.TextStyle{Bold: r.bold}
		a.costPanel.Add(widget.NewLabelWithStyle(r.label, fyne.TextAlignLeading, style))
		a.costPanel.Add(widget.NewLabelWithStyle(r.amount, fyne.TextAlignTrailing, style))
	}
	a.dimLabel.SetText(dimensionText(a.cfg))
}
