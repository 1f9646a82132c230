// FrameShop — picture framing configurator and shop counter
//
// A cross-platform desktop application for designing framed artwork,
// pricing it from the shop's catalog and turning the result into quotes,
// job tickets and invoices.
//
// Build:
//   go build -o frameshop ./cmd/frameshop
//
// Configuration is read from the app config file and can be overridden by
// FRAMESHOP_DATA_DIR, FRAMESHOP_LOG_LEVEL and FRAMESHOP_QUOTA_BYTES, also
// from a .env file in the working directory.

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/logger"
	"github.com/piwi3910/FrameShop/internal/store"
	"github.com/piwi3910/FrameShop/internal/ui"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	configPath := store.DefaultConfigPath()
	cfg, cfgErr := store.LoadAppConfig(configPath)
	cfg.ApplyEnv(os.Getenv)
	cfg.Normalize()

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Development: os.Getenv("FRAMESHOP_DEV") != "",
		File:        os.Getenv("FRAMESHOP_LOG_FILE"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "frameshop: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfgErr != nil {
		log.Warn("app config unreadable, using defaults", zap.String("path", configPath), zap.Error(cfgErr))
	}

	stores, err := store.Open(cfg.DataDir, cfg.QuotaBytes)
	if err != nil {
		log.Error("data directory unavailable, records disabled", zap.String("dir", cfg.DataDir), zap.Error(err))
	}

	catalogPath := store.CatalogFile
	presetPath := store.PresetFile
	if stores != nil {
		catalogPath = stores.CatalogPath()
		presetPath = stores.PresetPath()
	}
	catalog, err := store.LoadCatalog(catalogPath)
	if err != nil {
		log.Fatal("load catalog", zap.String("path", catalogPath), zap.Error(err))
	}
	presets, err := store.LoadPresets(presetPath)
	if err != nil {
		log.Fatal("load presets", zap.String("path", presetPath), zap.Error(err))
	}
	log.Info("starting",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("frames", len(catalog.Frames)),
		zap.Int("presets", len(presets.Presets)),
	)

	application := app.NewWithID("com.piwi3910.frameshop")
	window := application.NewWindow("FrameShop — Picture Framing Configurator")

	appUI := ui.NewApp(application, window, ui.Deps{
		Config:     cfg,
		ConfigPath: configPath,
		Catalog:    catalog,
		Presets:    presets,
		Stores:     stores,
		Logger:     log,
	})
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 860))
	window.CenterOnScreen()
	window.ShowAndRun()
}
