package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/document"
	"github.com/piwi3910/FrameShop/internal/export"
	"github.com/piwi3910/FrameShop/internal/render"
	"github.com/piwi3910/FrameShop/internal/store"
)

// saveTimeout bounds a single record write.
const saveTimeout = 10 * time.Second

type customerForm struct {
	name  *widget.Entry
	email *widget.Entry
	phone *widget.Entry
	notes *widget.Entry
}

func (f customerForm) request(a *App) document.Request {
	return document.Request{
		Config:        a.cfg.Clone(),
		CustomerName:  f.name.Text,
		CustomerEmail: f.email.Text,
		CustomerPhone: f.phone.Text,
		Notes:         f.notes.Text,
	}
}

// ─── Customer & documents panel ────────────────────────────

func (a *App) buildCustomerPanel() fyne.CanvasObject {
	a.customer = customerForm{
		name:  widget.NewEntry(),
		email: widget.NewEntry(),
		phone: widget.NewEntry(),
		notes: widget.NewMultiLineEntry(),
	}
	a.customer.name.SetPlaceHolder("Required")
	a.customer.notes.SetMinRowsVisible(3)

	form := widget.NewForm(
		widget.NewFormItem("Name", a.customer.name),
		widget.NewFormItem("Email", a.customer.email),
		widget.NewFormItem("Phone", a.customer.phone),
		widget.NewFormItem("Notes", a.customer.notes),
	)

	quoteBtn := widget.NewButtonWithIcon("Create Quote", theme.DocumentIcon(), a.createQuote)
	quoteBtn.Importance = widget.HighImportance
	jobBtn := widget.NewButtonWithIcon("Create Job", theme.ListIcon(), a.createJob)
	invoiceBtn := widget.NewButtonWithIcon("Create Invoice", theme.DocumentCreateIcon(), a.createInvoice)

	return widget.NewCard("Customer", "", container.NewVBox(
		form,
		container.NewGridWithColumns(3, quoteBtn, jobBtn, invoiceBtn),
	))
}

// runCreate persists a document off the UI goroutine and reports the
// outcome back on it.
func (a *App) runCreate(what string, create func(ctx context.Context, req document.Request) (string, error)) {
	if a.service == nil {
		dialog.ShowError(errors.New("record storage is not available"), a.window)
		return
	}
	req := a.customer.request(a)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		ref, err := create(ctx, req)
		fyne.Do(func() {
			if err != nil {
				a.log.Warn("create failed", zap.String("kind", what), zap.Error(err))
				dialog.ShowError(errors.New(document.AlertMessage(err)), a.window)
				return
			}
			a.setStatus("%s %s saved", what, ref)
			dialog.ShowInformation(what+" Created", fmt.Sprintf("%s %s was saved for %s.", what, ref, req.CustomerName), a.window)
		})
	}()
}

func (a *App) createQuote() {
	a.runCreate("Quote", func(ctx context.Context, req document.Request) (string, error) {
		q, err := a.service.CreateQuote(ctx, req)
		if err != nil {
			return "", err
		}
		fyne.Do(func() { a.lastQuote = &q })
		return q.ID, nil
	})
}

func (a *App) createJob() {
	a.runCreate("Job", func(ctx context.Context, req document.Request) (string, error) {
		j, err := a.service.CreateJob(ctx, req)
		if err != nil {
			return "", err
		}
		fyne.Do(func() { a.lastJob = &j })
		return j.ID, nil
	})
}

func (a *App) createInvoice() {
	a.runCreate("Invoice", func(ctx context.Context, req document.Request) (string, error) {
		inv, err := a.service.CreateInvoice(ctx, req)
		if err != nil {
			return "", err
		}
		fyne.Do(func() { a.lastInvoice = &inv })
		return inv.Number, nil
	})
}

// ─── Exports ───────────────────────────────────────────────

func (a *App) exportOptions(withPreview bool) export.Options {
	opts := export.Options{
		ShopName:       a.config.ShopName,
		CurrencySymbol: a.catalog.Settings.CurrencySymbol,
	}
	if withPreview && a.frameImg != nil {
		opts.Preview = a.frameImg
	}
	return opts
}

// saveFile asks for a destination and runs write in the background. The
// path is remembered in the recent exports list.
func (a *App) saveFile(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		go func() {
			werr := write(path)
			fyne.Do(func() {
				if werr != nil {
					a.log.Error("export failed", zap.String("path", path), zap.Error(werr))
					dialog.ShowError(werr, a.window)
					return
				}
				a.log.Info("exported", zap.String("path", path))
				a.rememberExport(path)
				dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
			})
		}()
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) rememberExport(path string) {
	a.config.AddRecentExport(path)
	if a.configPath == "" {
		return
	}
	if err := store.SaveAppConfig(a.configPath, a.config); err != nil {
		a.log.Warn("could not save settings", zap.Error(err))
	}
}

func (a *App) exportQuotePDF() {
	if a.lastQuote == nil {
		dialog.ShowInformation("No quote", "Create a quote before exporting it.", a.window)
		return
	}
	q := *a.lastQuote
	opts := a.exportOptions(true)
	a.saveFile("quote-"+q.ID+".pdf", func(path string) error {
		return export.ExportQuotePDF(path, q, opts)
	})
}

func (a *App) exportInvoicePDF() {
	if a.lastInvoice == nil {
		dialog.ShowInformation("No invoice", "Create an invoice before exporting it.", a.window)
		return
	}
	inv := *a.lastInvoice
	opts := a.exportOptions(true)
	a.saveFile("invoice-"+inv.Number+".pdf", func(path string) error {
		return export.ExportInvoicePDF(path, inv, opts)
	})
}

func (a *App) exportJobTicket() {
	if a.lastJob == nil {
		dialog.ShowInformation("No job", "Create a job before printing its ticket.", a.window)
		return
	}
	job := *a.lastJob
	opts := a.exportOptions(false)
	a.saveFile("job-"+job.ID+".pdf", func(path string) error {
		return export.ExportJobTicket(path, job, opts)
	})
}

func (a *App) exportQuoteRegister() {
	if a.stores == nil {
		dialog.ShowError(errors.New("record storage is not available"), a.window)
		return
	}
	quotes := a.stores.Quotes.All()
	a.saveFile("quotes.xlsx", func(path string) error {
		return export.ExportQuoteRegister(path, quotes)
	})
}

func (a *App) exportMatCut() {
	cfg := a.cfg.Clone()
	a.saveFile("matcut.dxf", func(path string) error {
		return export.ExportMatCutDXF(path, cfg)
	})
}

func (a *App) exportPreviewPNG() {
	if a.frameImg == nil {
		return
	}
	img := a.frameImg
	a.saveFile("preview.png", func(path string) error {
		return render.SavePNG(path, img)
	})
}

func (a *App) exportRoomPNG() {
	if a.room.image == nil {
		dialog.ShowInformation("No mockup", "Open the Room tab to render a mockup first.", a.window)
		return
	}
	img := a.room.image
	a.saveFile("room.png", func(path string) error {
		return render.SavePNG(path, img)
	})
}
