package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/document"
	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/importer"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/render"
	"github.com/piwi3910/FrameShop/internal/store"
)

var catalogKinds = []struct {
	kind  model.ItemKind
	title string
	unit  string
}{
	{model.KindFrame, "Frames", "per m"},
	{model.KindMat, "Mats", "per m²"},
	{model.KindGlazing, "Glazing", "per m²"},
	{model.KindPrintMaterial, "Print", "per m²"},
}

// parsePrice reads a non-negative price; decimal commas are accepted.
func parsePrice(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 || !geom.Finite(v) {
		return 0, false
	}
	return v, true
}

// importSummary describes an import outcome for the user.
func importSummary(res importer.ImportResult, added, replaced int) string {
	msg := fmt.Sprintf("Imported %d items: %d new, %d updated.", len(res.Items), added, replaced)
	if len(res.Errors) > 0 {
		msg += fmt.Sprintf("\n\n%d rows had errors and were skipped.", len(res.Errors))
	}
	if len(res.Warnings) > 0 {
		msg += "\n\nWarnings:\n" + strings.Join(res.Warnings, "\n")
	}
	return msg
}

// ─── Catalog Dialog ────────────────────────────────────────

func (a *App) showCatalogDialog() {
	tabs := container.NewAppTabs()
	var refreshAll func()
	lists := make([]*fyne.Container, len(catalogKinds))

	refreshAll = func() {
		for i, k := range catalogKinds {
			a.fillCatalogList(lists[i], k.kind, k.unit, refreshAll)
		}
	}

	for i, k := range catalogKinds {
		k := k
		lists[i] = container.NewVBox()
		addBtn := widget.NewButtonWithIcon("Add "+strings.TrimSuffix(k.title, "s"), theme.ContentAddIcon(), func() {
			a.showItemDialog(model.NewCatalogItem(k.kind, "", 0), true, refreshAll)
		})
		tabs.Append(container.NewTabItem(k.title, container.NewBorder(
			container.NewHBox(addBtn), nil, nil, nil,
			container.NewVScroll(lists[i]),
		)))
	}
	tabs.Append(container.NewTabItem("Pricing", a.buildPricingForm()))
	refreshAll()

	importBtn := widget.NewButtonWithIcon("Import CSV/Excel...", theme.FolderOpenIcon(), func() {
		a.importCatalog(refreshAll)
	})
	exportBtn := widget.NewButtonWithIcon("Export YAML...", theme.DocumentSaveIcon(), func() {
		cat := a.catalog.Clone()
		a.saveFile("catalog.yaml", func(path string) error {
			return store.SaveCatalog(path, cat)
		})
	})

	content := container.NewBorder(
		container.NewHBox(layout.NewSpacer(), importBtn, exportBtn),
		nil, nil, nil,
		tabs,
	)

	d := dialog.NewCustom("Catalog", "Close", content, a.window)
	d.Resize(fyne.NewSize(720, 520))
	d.Show()
}

func (a *App) fillCatalogList(list *fyne.Container, kind model.ItemKind, unit string, onDone func()) {
	list.RemoveAll()
	items := a.catalog.Items(kind)
	if len(items) == 0 {
		list.Add(widget.NewLabel("No items. Add one or import a price list."))
		return
	}

	list.Add(container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Price "+unit, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Colour", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(""),
		widget.NewLabel(""),
	))
	list.Add(widget.NewSeparator())

	for _, it := range items {
		it := it
		swatch := canvas.NewRectangle(color.Transparent)
		if it.Color != "" {
			swatch.FillColor = render.ParseHexColor(it.Color, render.NeutralMat)
		}
		swatch.SetMinSize(fyne.NewSize(24, 16))

		name := it.Name
		if kind == model.KindFrame && it.FaceWidthCm > 0 {
			name = fmt.Sprintf("%s (%.1f cm)", it.Name, it.FaceWidthCm)
		}
		list.Add(container.NewGridWithColumns(5,
			widget.NewLabel(name),
			widget.NewLabel(document.FormatMoney(a.catalog.Settings.CurrencySymbol, it.Price)),
			container.NewCenter(swatch),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showItemDialog(it, false, onDone)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				cat := a.catalog.Clone()
				cat.Remove(it.Kind, it.ID)
				a.commitCatalog(cat)
				onDone()
			}),
		))
	}
}

// showItemDialog adds or edits one catalog item.
func (a *App) showItemDialog(it model.CatalogItem, isNew bool, onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(it.Name)
	priceEntry := widget.NewEntry()
	priceEntry.SetText(formatLength(it.Price))
	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#RRGGBB")
	colorEntry.SetText(it.Color)
	faceEntry := widget.NewEntry()
	faceEntry.SetText(formatLength(it.FaceWidthCm))

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Price", priceEntry),
		widget.NewFormItem("Colour", colorEntry),
	}
	if it.Kind == model.KindFrame {
		items = append(items, widget.NewFormItem("Face Width (cm)", faceEntry))
	}

	title, confirm := "Edit Item", "Save"
	if isNew {
		title, confirm = "Add Item", "Add"
	}
	form := dialog.NewForm(title, confirm, "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			price, valid := parsePrice(priceEntry.Text)
			if name == "" || !valid {
				dialog.ShowError(fmt.Errorf("name is required and price must be a number >= 0"), a.window)
				return
			}
			it.Name, it.Price = name, price
			it.Color = strings.ToUpper(strings.TrimSpace(colorEntry.Text))
			if it.Color != "" && !strings.HasPrefix(it.Color, "#") {
				it.Color = "#" + it.Color
			}
			if face, ok := parseLength(faceEntry.Text); ok && it.Kind == model.KindFrame {
				it.FaceWidthCm = face
			}

			cat := a.catalog.Clone()
			if isNew {
				cat.Add(it)
			} else {
				cat.Update(it)
			}
			a.commitCatalog(cat)
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 300))
	form.Show()
}

func (a *App) buildPricingForm() fyne.CanvasObject {
	s := a.catalog.Settings

	priceEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(formatLength(*val))
		e.OnChanged = func(text string) {
			if v, ok := parsePrice(text); ok {
				*val = v
			}
		}
		return e
	}
	taxPct := s.TaxRate * 100
	codeEntry := widget.NewEntry()
	codeEntry.SetText(s.CurrencyCode)
	symbolEntry := widget.NewEntry()
	symbolEntry.SetText(s.CurrencySymbol)

	form := widget.NewForm(
		widget.NewFormItem("Labour Base", priceEntry(&s.LabourBase)),
		widget.NewFormItem("Margin Multiplier", priceEntry(&s.MarginMultiplier)),
		widget.NewFormItem("Tax Rate (%)", priceEntry(&taxPct)),
		widget.NewFormItem("Backer Price per m²", priceEntry(&s.BackerPricePerSqM)),
		widget.NewFormItem("Currency Code", codeEntry),
		widget.NewFormItem("Currency Symbol", symbolEntry),
	)
	form.SubmitText = "Apply"
	form.OnSubmit = func() {
		s.TaxRate = taxPct / 100
		s.CurrencyCode = strings.ToUpper(strings.TrimSpace(codeEntry.Text))
		s.CurrencySymbol = strings.TrimSpace(symbolEntry.Text)
		cat := a.catalog.Clone()
		cat.Settings = s
		a.commitCatalog(cat)
		a.setStatus("%s", "Pricing updated")
	}
	return container.NewVScroll(form)
}

// commitCatalog saves a changed catalog and makes it live.
func (a *App) commitCatalog(cat model.Catalog) {
	if a.stores != nil {
		if err := store.SaveCatalog(a.stores.CatalogPath(), cat); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
			return
		}
	}
	a.setCatalog(cat)
}

func (a *App) importCatalog(onDone func()) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		res := importer.Import(path)
		for _, w := range res.Warnings {
			a.log.Warn("catalog import", zap.String("file", path), zap.String("warning", w))
		}
		if len(res.Errors) > 0 {
			a.log.Warn("catalog import rows skipped", zap.String("file", path), zap.Strings("errors", res.Errors))
			dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(res.Errors, "\n")), a.window)
		}
		if len(res.Items) == 0 {
			return
		}

		cat := a.catalog.Clone()
		added, replaced := importer.MergeInto(&cat, res.Items)
		a.commitCatalog(cat)
		onDone()
		dialog.ShowInformation("Import Complete", importSummary(res, added, replaced), a.window)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx", ".xlsm"}))
	d.Show()
}
