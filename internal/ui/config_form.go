package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// noneOption is the select entry for "nothing chosen".
const noneOption = "None"

// parseLength reads a length field. Decimal commas are accepted; anything
// that is not a finite positive number is rejected.
func parseLength(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || !geom.ValidLength(v) {
		return 0, false
	}
	return v, true
}

// formatLength prints a length without trailing zeros.
func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// itemOptions lists a catalog kind for a select, led by noneOption.
func itemOptions(cat model.Catalog, kind model.ItemKind) []string {
	return append([]string{noneOption}, cat.Names(kind)...)
}

// itemName returns the select entry for an item id.
func itemName(cat model.Catalog, kind model.ItemKind, id string) string {
	for _, it := range cat.Items(kind) {
		if it.ID == id {
			return it.Name
		}
	}
	return noneOption
}

// itemID resolves a select entry back to an item id; "" for noneOption or
// an unknown name.
func itemID(cat model.Catalog, kind model.ItemKind, name string) string {
	if name == noneOption {
		return ""
	}
	if it, ok := cat.FindByName(kind, name); ok {
		return it.ID
	}
	return ""
}

// setMatSlot writes one mat layer, growing the slice as needed so the slot
// index stays stable.
func setMatSlot(mats []model.MatLayer, slot int, layer model.MatLayer) []model.MatLayer {
	for len(mats) <= slot {
		mats = append(mats, model.MatLayer{})
	}
	mats[slot] = layer
	return mats
}

func matSlot(mats []model.MatLayer, slot int) model.MatLayer {
	if slot < len(mats) {
		return mats[slot]
	}
	return model.MatLayer{}
}

// lengthEntry edits a length in place. Invalid input keeps the previous
// value; submitting puts the accepted value back into the field.
func (a *App) lengthEntry(val *float64, onChange func()) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(formatLength(*val))
	e.OnChanged = func(text string) {
		v, ok := parseLength(text)
		if !ok || v == *val {
			return
		}
		*val = v
		onChange()
	}
	e.OnSubmitted = func(string) {
		e.SetText(formatLength(*val))
	}
	return e
}

// itemSelect picks a catalog item of one kind.
func (a *App) itemSelect(kind model.ItemKind, id string, onPick func(id string)) *widget.Select {
	sel := widget.NewSelect(itemOptions(a.catalog, kind), nil)
	sel.SetSelected(itemName(a.catalog, kind, id))
	sel.OnChanged = func(name string) {
		onPick(itemID(a.catalog, kind, name))
	}
	return sel
}

// rebuildForm recreates the configuration form from the live state.
func (a *App) rebuildForm() {
	if a.formHolder == nil {
		return
	}
	a.formHolder.Objects = []fyne.CanvasObject{a.buildConfigForm()}
	a.formHolder.Refresh()
}

func (a *App) buildConfigForm() fyne.CanvasObject {
	cfg := &a.cfg

	artworkSection := widget.NewCard("Artwork", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Width (cm)"), a.lengthEntry(&cfg.ArtworkWidthCm, a.refresh),
			widget.NewLabel("Height (cm)"), a.lengthEntry(&cfg.ArtworkHeightCm, a.refresh),
		),
		a.buildArtworkPicker(),
	))

	frameSelect := a.itemSelect(model.KindFrame, cfg.FrameID, func(id string) {
		cfg.FrameID = id
		if f, ok := a.catalog.Frame(id); ok && geom.ValidLength(f.FaceWidthCm) {
			cfg.FaceWidthCm = f.FaceWidthCm
			a.rebuildForm()
		}
		a.refresh()
	})
	frameSection := widget.NewCard("Frame", "", container.NewGridWithColumns(2,
		widget.NewLabel("Moulding"), frameSelect,
		widget.NewLabel("Face width (cm)"), a.lengthEntry(&cfg.FaceWidthCm, a.refresh),
	))

	matGrid := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Layer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Mat", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Border (cm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for slot := 0; slot < model.MaxMats; slot++ {
		slot := slot
		layer := matSlot(cfg.Mats, slot)
		border := layer.BorderCm
		if border == 0 {
			border = 5
		}
		sel := a.itemSelect(model.KindMat, layer.MatID, func(id string) {
			cur := matSlot(cfg.Mats, slot)
			cur.MatID = id
			if cur.BorderCm == 0 {
				cur.BorderCm = border
			}
			cfg.Mats = setMatSlot(cfg.Mats, slot, cur)
			a.refresh()
		})
		borderEntry := a.lengthEntry(&border, func() {
			cur := matSlot(cfg.Mats, slot)
			cur.BorderCm = border
			cfg.Mats = setMatSlot(cfg.Mats, slot, cur)
			a.refresh()
		})
		matGrid.Add(widget.NewLabel(fmt.Sprintf("Mat %d", slot+1)))
		matGrid.Add(sel)
		matGrid.Add(borderEntry)
	}
	matSection := widget.NewCard("Mats", "Outermost first", matGrid)

	glazingSelect := a.itemSelect(model.KindGlazing, cfg.GlazingID, func(id string) {
		cfg.GlazingID = id
		a.refresh()
	})
	printSelect := a.itemSelect(model.KindPrintMaterial, cfg.PrintMaterialID, func(id string) {
		cfg.PrintMaterialID = id
		a.refresh()
	})
	printCheck := widget.NewCheck("Print the artwork", func(b bool) {
		cfg.IncludePrint = b
		a.refresh()
	})
	printCheck.Checked = cfg.IncludePrint
	backerCheck := widget.NewCheck("Include backer board", func(b bool) {
		cfg.IncludeBacker = b
		a.refresh()
	})
	backerCheck.Checked = cfg.IncludeBacker

	extrasSection := widget.NewCard("Glazing & Extras", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Glazing"), glazingSelect,
			widget.NewLabel("Print material"), printSelect,
		),
		printCheck,
		backerCheck,
	))

	modeRadio := widget.NewRadioGroup([]string{"Basic", "Pro"}, nil)
	modeRadio.Horizontal = true
	if cfg.Mode() == model.ModePro {
		modeRadio.SetSelected("Pro")
	} else {
		modeRadio.SetSelected("Basic")
	}
	modeRadio.OnChanged = func(choice string) {
		a.setMode(choice == "Pro")
	}
	layoutSection := widget.NewCard("Mat Layout", "Basic stacks the mats; Pro cuts free openings", modeRadio)

	return container.NewVBox(
		artworkSection,
		frameSection,
		matSection,
		extrasSection,
		layoutSection,
	)
}

// setMode switches between stacked mats and free openings. Openings placed
// in a previous pro session are kept on the editor board.
func (a *App) setMode(pro bool) {
	a.cancelGesture()
	if pro {
		a.cfg.Layout = model.Openings{Items: a.editor.Board.Openings()}
	} else {
		a.cfg.Layout = model.Stacked{}
		a.editor.Select("")
	}
	a.refresh()
}

func (a *App) buildArtworkPicker() fyne.CanvasObject {
	label := widget.NewLabel("No image")
	if a.cfg.ArtworkRef != "" {
		label.SetText(shortPath(a.cfg.ArtworkRef))
	}
	label.Truncation = fyne.TextTruncateEllipsis

	pick := widget.NewButtonWithIcon("Image...", theme.FolderOpenIcon(), func() {
		a.pickImage(func(path string) {
			a.cfg.ArtworkRef = path
			label.SetText(shortPath(path))
			a.refresh()
		})
	})
	clearBtn := widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		a.cfg.ArtworkRef = ""
		label.SetText("No image")
		a.refresh()
	})
	return container.NewBorder(nil, nil, nil, container.NewHBox(pick, clearBtn), label)
}

// pickImage asks for an image file and hands back its path.
func (a *App) pickImage(onPick func(path string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.loader.Forget(path)
		onPick(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}))
	d.Show()
}

func shortPath(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
