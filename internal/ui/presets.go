package ui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/store"
)

// presetSummary describes a preset's build in a few lines.
func presetSummary(p model.Preset, cat model.Catalog) string {
	cfg := p.Config
	var b strings.Builder
	fmt.Fprintf(&b, "Artwork %s x %s cm\n", formatLength(cfg.ArtworkWidthCm), formatLength(cfg.ArtworkHeightCm))
	fmt.Fprintf(&b, "Frame: %s (%s cm face)\n", itemName(cat, model.KindFrame, cfg.FrameID), formatLength(cfg.FaceWidthCm))
	for i, m := range cfg.ActiveMats() {
		fmt.Fprintf(&b, "Mat %d: %s, %s cm border\n", i+1, itemName(cat, model.KindMat, m.MatID), formatLength(m.BorderCm))
	}
	fmt.Fprintf(&b, "Glazing: %s\n", itemName(cat, model.KindGlazing, cfg.GlazingID))
	if cfg.Mode() == model.ModePro {
		fmt.Fprintf(&b, "Pro layout, %d openings", len(cfg.OpeningList()))
	} else {
		b.WriteString("Basic layout")
	}
	return b.String()
}

// showPresetManager opens the preset window where saved builds can be
// applied, created from the current build, deleted, imported and exported.
func (a *App) showPresetManager() {
	w := a.app.NewWindow("Presets")
	w.Resize(fyne.NewSize(640, 440))

	selectedIdx := -1
	detail := container.NewVBox(widget.NewLabel("Select a preset to view details."))

	list := widget.NewList(
		func() int { return len(a.presets.Presets) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("Preset Name"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			box.Objects[1].(*widget.Label).SetText(a.presets.Presets[id].Name)
		},
	)

	resetDetail := func() {
		selectedIdx = -1
		list.UnselectAll()
		list.Refresh()
		detail.RemoveAll()
		detail.Add(widget.NewLabel("Select a preset to view details."))
		detail.Refresh()
	}

	list.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		p := a.presets.Presets[id]
		detail.RemoveAll()
		detail.Add(widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		if p.Description != "" {
			desc := widget.NewLabel(p.Description)
			desc.Wrapping = fyne.TextWrapWord
			detail.Add(desc)
		}
		detail.Add(widget.NewSeparator())
		detail.Add(widget.NewLabel(presetSummary(p, a.catalog)))
		detail.Add(widget.NewLabelWithStyle("Updated "+dateOnly(p.UpdatedAt), fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))
		detail.Refresh()
	}

	selected := func() (model.Preset, bool) {
		if selectedIdx < 0 || selectedIdx >= len(a.presets.Presets) {
			dialog.ShowInformation("No Selection", "Select a preset first.", w)
			return model.Preset{}, false
		}
		return a.presets.Presets[selectedIdx], true
	}

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		p, ok := selected()
		if !ok {
			return
		}
		a.applyConfiguration(p.Apply())
		a.setStatus("Preset %q applied", p.Name)
		w.Close()
	})
	applyBtn.Importance = widget.HighImportance

	saveBtn := widget.NewButtonWithIcon("Save Current", theme.ContentAddIcon(), func() {
		a.showSavePresetDialog(w, resetDetail)
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected()
		if !ok {
			return
		}
		dialog.ShowConfirm("Delete Preset", fmt.Sprintf("Delete preset %q?", p.Name), func(yes bool) {
			if !yes {
				return
			}
			a.presets.Remove(p.ID)
			a.savePresets(w)
			resetDetail()
		}, w)
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importPresets(w, resetDetail)
	})
	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		ps := a.presets
		ps.Presets = append([]model.Preset(nil), a.presets.Presets...)
		a.saveFile("presets.json", func(path string) error {
			return store.SavePresets(path, ps)
		})
	})

	toolbar := container.NewHBox(applyBtn, saveBtn, deleteBtn, layout.NewSpacer(), importBtn, exportBtn)
	split := container.NewHSplit(list, container.NewVScroll(detail))
	split.SetOffset(0.4)

	w.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
	w.Show()
}

func (a *App) showSavePresetDialog(parent fyne.Window, onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. Gallery triple mat")
	descEntry := widget.NewMultiLineEntry()
	descEntry.SetMinRowsVisible(3)

	form := dialog.NewForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(errors.New("preset name is required"), parent)
				return
			}
			a.syncLayout()
			a.presets.Add(model.NewPreset(name, strings.TrimSpace(descEntry.Text), a.cfg))
			a.savePresets(parent)
			onDone()
		},
		parent,
	)
	form.Resize(fyne.NewSize(400, 260))
	form.Show()
}

func (a *App) importPresets(parent fyne.Window, onDone func()) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		ps, err := store.LoadPresets(path)
		if err != nil {
			a.log.Warn("preset import failed", zap.String("file", path), zap.Error(err))
			dialog.ShowError(err, parent)
			return
		}
		for _, p := range ps.Presets {
			a.presets.Add(p)
		}
		a.savePresets(parent)
		onDone()
		dialog.ShowInformation("Import Complete", fmt.Sprintf("Imported %d presets.", len(ps.Presets)), parent)
	}, parent)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (a *App) savePresets(parent fyne.Window) {
	if a.stores == nil {
		return
	}
	if err := store.SavePresets(a.stores.PresetPath(), a.presets); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), parent)
	}
}

// dateOnly trims an RFC 3339 timestamp to its date.
func dateOnly(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
