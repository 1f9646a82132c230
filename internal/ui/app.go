// Package ui is the FrameShop desktop configurator: the build form, live
// cost panel, interactive preview, room mockup and document actions.
package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/document"
	"github.com/piwi3910/FrameShop/internal/layout"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/pricing"
	"github.com/piwi3910/FrameShop/internal/render"
	"github.com/piwi3910/FrameShop/internal/store"
	"github.com/piwi3910/FrameShop/internal/ui/widgets"
)

// Deps is everything the UI needs from startup.
type Deps struct {
	Config     model.AppConfig
	ConfigPath string
	Catalog    model.Catalog
	Presets    model.PresetStore
	Stores     *store.Stores
	Logger     *zap.Logger
}

// App holds all application state and UI references. It is owned by the
// fyne main goroutine; background work hands results back through fyne.Do.
type App struct {
	app        fyne.App
	window     fyne.Window
	log        *zap.Logger
	theme      *ShopTheme
	config     model.AppConfig
	configPath string
	catalog    model.Catalog
	presets    model.PresetStore
	stores     *store.Stores
	service    *document.Service

	compositor *render.Compositor
	loader     *render.FileLoader

	cfg      model.Configuration
	editor   *layout.Editor
	costs    model.CostBreakdown
	scene    render.Scene
	frameImg *image.RGBA

	room roomState

	lastQuote   *model.Quote
	lastJob     *model.Job
	lastInvoice *model.Invoice

	// UI references for dynamic updates
	tabs        *container.AppTabs
	formHolder  *fyne.Container
	preview     *widgets.Surface
	previewSize fyne.Size // zero until the preview is laid out
	costPanel   *fyne.Container
	dimLabel    *widget.Label
	status      *widget.Label
	customer    customerForm
}

func NewApp(application fyne.App, window fyne.Window, d Deps) *App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	loader := render.NewFileLoader(24)
	cfg := model.NewConfiguration()
	cfg.FaceWidthCm = d.Config.DefaultFaceCm

	a := &App{
		app:        application,
		window:     window,
		log:        log,
		theme:      NewShopTheme(d.Config.Theme),
		config:     d.Config,
		configPath: d.ConfigPath,
		catalog:    d.Catalog,
		presets:    d.Presets,
		stores:     d.Stores,
		loader:     loader,
		compositor: render.NewCompositor(log.Named("render").Sugar(), loader),
		cfg:        cfg,
	}
	w, h := cfg.VisibleSize()
	a.editor = layout.NewEditor(w, h, nil)
	a.editor.Board.SetSnap(d.Config.GridStepCm, d.Config.MagnetCm)
	if d.Stores != nil {
		a.service = document.NewServiceFromStores(document.NewBuilder(d.Catalog), d.Stores, log.Named("documents"))
	}
	a.room.bg = render.RoomBackground{Kind: render.BackgroundTexture, Seed: 1}
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Build", func() {
			a.applyConfiguration(a.freshConfiguration())
		}),
		fyne.NewMenuItem("Presets...", a.showPresetManager),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Quote PDF...", a.exportQuotePDF),
		fyne.NewMenuItem("Export Invoice PDF...", a.exportInvoicePDF),
		fyne.NewMenuItem("Export Job Ticket...", a.exportJobTicket),
		fyne.NewMenuItem("Export Quote Register...", a.exportQuoteRegister),
		fyne.NewMenuItem("Export Mat-Cut DXF...", a.exportMatCut),
		fyne.NewMenuItem("Export Preview PNG...", a.exportPreviewPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Catalog...", a.showCatalogDialog),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About FrameShop",
		"FrameShop — Custom Framing Configurator\n\n"+
			"Price frames, mats and glazing, lay out multi-opening mats,\n"+
			"preview the piece on a wall, and issue quotes, jobs and invoices.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.formHolder = container.NewStack()
	a.rebuildForm()

	a.preview = widgets.NewSurface(previewMinPx, previewMinPx)
	a.bindPreview()

	previewTab := container.NewTabItem("Preview", container.NewBorder(
		a.buildEditorToolbar(), nil, nil, nil,
		a.preview,
	))
	roomTab := container.NewTabItem("Room", a.buildRoomPanel())

	a.tabs = container.NewAppTabs(previewTab, roomTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(ti *container.TabItem) {
		a.room.visible = ti == roomTab
		if a.room.visible {
			a.scheduleRoom()
		}
	}

	a.status = widget.NewLabel("")
	right := container.NewVScroll(container.NewVBox(
		a.buildCostPanel(),
		widget.NewSeparator(),
		a.buildCustomerPanel(),
	))

	split := container.NewHSplit(
		container.NewVScroll(a.formHolder),
		container.NewHSplit(a.tabs, right),
	)
	split.SetOffset(0.25)

	a.installShortcuts()
	a.refresh()

	root := container.NewBorder(nil, a.status, nil, nil, split)
	return fynetooltip.AddWindowToolTipLayer(root, a.window.Canvas())
}

func (a *App) installShortcuts() {
	c := a.window.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.cancelGesture()
		}
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.undo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}, func(fyne.Shortcut) {
		a.redo()
	})
}

// freshConfiguration is the configuration of a new build.
func (a *App) freshConfiguration() model.Configuration {
	cfg := model.NewConfiguration()
	cfg.FaceWidthCm = a.config.DefaultFaceCm
	return cfg
}

// applyConfiguration replaces the live configuration, as when a preset is
// loaded, and rebuilds everything that shows it.
func (a *App) applyConfiguration(cfg model.Configuration) {
	if cfg.Layout == nil {
		cfg.Layout = model.Stacked{}
	}
	a.cfg = cfg
	w, h := cfg.VisibleSize()
	a.editor.Board.SetVisibleArea(w, h)
	a.editor.Reset(cfg.OpeningList())
	a.rebuildForm()
	a.refresh()
}

// refresh recomputes costs and repaints after any change. Pricing and the
// preview render run synchronously; the room mockup is rendered in the
// background.
func (a *App) refresh() {
	a.syncLayout()
	a.costs = pricing.Compute(a.cfg, a.catalog)
	a.updateCostPanel()
	a.renderPreview()
	a.scheduleRoom()
}

// syncLayout keeps the editor's visible area and the configuration's
// openings in step.
func (a *App) syncLayout() {
	w, h := a.cfg.VisibleSize()
	if bw, bh := a.editor.Board.Size(); bw != w || bh != h {
		a.editor.Board.SetVisibleArea(w, h)
	}
	if a.cfg.Mode() == model.ModePro {
		a.cfg.Layout = model.Openings{Items: a.editor.Board.Openings()}
	}
}

func (a *App) setStatus(format string, args ...interface{}) {
	if a.status != nil {
		a.status.SetText(fmt.Sprintf(format, args...))
	}
}

// setCatalog swaps the price list everywhere it is used.
func (a *App) setCatalog(cat model.Catalog) {
	a.catalog = cat
	if a.service != nil {
		a.service.SetCatalog(cat)
	}
	a.rebuildForm()
	a.refresh()
}
