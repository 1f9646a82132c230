package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/store"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(formatLength(*val))
		e.OnChanged = func(text string) {
			if v, ok := parseLength(text); ok {
				*val = v
			}
		}
		return e
	}

	shopEntry := widget.NewEntry()
	shopEntry.SetText(cfg.ShopName)
	shopEntry.OnChanged = func(text string) { cfg.ShopName = strings.TrimSpace(text) }

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	quotaEntry := widget.NewEntry()
	quotaEntry.SetText(strconv.FormatInt(cfg.QuotaBytes/1024, 10))
	quotaEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil && v >= 0 {
			cfg.QuotaBytes = v * 1024
		}
	}

	recent := "None yet"
	if len(cfg.RecentExports) > 0 {
		recent = strings.Join(cfg.RecentExports, "\n")
	}
	recentLabel := widget.NewLabel(recent)
	recentLabel.Truncation = fyne.TextTruncateEllipsis

	formItems := []*widget.FormItem{
		widget.NewFormItem("Shop Name", shopEntry),
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Face Width (cm)", floatEntry(&cfg.DefaultFaceCm)),
		widget.NewFormItem("Snap Grid (cm)", floatEntry(&cfg.GridStepCm)),
		widget.NewFormItem("Magnet Distance (cm)", floatEntry(&cfg.MagnetCm)),
		widget.NewFormItem("Preview Size (px)", floatEntry(&cfg.PreviewBudgetPx)),
		widget.NewFormItem("Storage Quota (KiB, 0=off)", quotaEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Recent Exports", recentLabel),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			cfg.Normalize()
			a.applySettings(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.\nA new storage quota applies after restart.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 520))
	d.Show()
}

// applySettings makes new preferences take effect in the running session.
func (a *App) applySettings(cfg model.AppConfig) {
	a.config = cfg
	a.theme.SetVariantName(cfg.Theme)
	a.app.Settings().SetTheme(a.theme)
	a.editor.Board.SetSnap(cfg.GridStepCm, cfg.MagnetCm)
	a.refresh()
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		if a.stores == nil {
			dialog.ShowError(fmt.Errorf("record storage is not available"), a.window)
			return
		}
		backup := a.stores.Backup(a.config, a.catalog, a.presets)
		a.saveFile("frameshop-backup.json", func(path string) error {
			return store.ExportAllData(path, backup)
		})
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data replaces your settings, catalog and presets, and merges the\nbackup's customers, quotes, jobs and invoices into your records.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					a.restoreBackup(path)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all shop data (settings, catalog, presets and records) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(480, 250))
	d.Show()
}

func (a *App) restoreBackup(path string) {
	backup, err := store.ImportAllData(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if a.stores != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := a.stores.Restore(ctx, backup); err != nil {
			a.log.Error("restore failed", zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		if err := store.SaveCatalog(a.stores.CatalogPath(), backup.Catalog); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if err := store.SavePresets(a.stores.PresetPath(), backup.Presets); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
	}

	cfg := backup.Config
	cfg.DataDir = a.config.DataDir
	cfg.Normalize()
	a.presets = backup.Presets
	a.applySettings(cfg)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
		return
	}
	a.setCatalog(backup.Catalog)
	a.log.Info("backup restored", zap.String("path", path), zap.String("created_at", backup.CreatedAt))
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	path := a.configPath
	if path == "" {
		path = store.DefaultConfigPath()
	}
	return store.SaveAppConfig(path, a.config)
}
