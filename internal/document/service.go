package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/logger"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/pricing"
	"github.com/piwi3910/FrameShop/internal/store"
)

// ErrNoCustomer is returned when a document is requested without a
// customer name.
var ErrNoCustomer = errors.New("customer name is required")

// Upserter is the one write contract every record store satisfies.
type Upserter[T any] interface {
	Upsert(ctx context.Context, rec T) error
}

// CustomerDirectory stores customers and finds them again by predicate.
type CustomerDirectory interface {
	Upserter[model.Customer]
	Find(match func(model.Customer) bool) (model.Customer, bool)
}

// InvoiceStore stores invoices and reports how many exist, for numbering.
type InvoiceStore interface {
	Upserter[model.Invoice]
	Len() int
}

// EnsureCustomer returns the customer with the given name, creating and
// storing one when none exists. Names match case-insensitively.
func EnsureCustomer(ctx context.Context, dir CustomerDirectory, name, email, phone string) (model.Customer, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Customer{}, false, ErrNoCustomer
	}
	if c, ok := dir.Find(func(c model.Customer) bool { return strings.EqualFold(c.Name, name) }); ok {
		return c, false, nil
	}
	c := model.NewCustomer(name, strings.TrimSpace(email), strings.TrimSpace(phone))
	if err := dir.Upsert(ctx, c); err != nil {
		return model.Customer{}, false, fmt.Errorf("create customer %q: %w", name, err)
	}
	return c, true, nil
}

// Request is a "create document" action from the configurator.
type Request struct {
	Config        model.Configuration
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// Service prices the configuration, builds the record and writes it. Its
// methods are safe to call from several goroutines; creates run one at a
// time so customer lookup and invoice numbering see every earlier write.
type Service struct {
	mu        sync.Mutex
	builder   *Builder
	customers CustomerDirectory
	quotes    Upserter[model.Quote]
	jobs      Upserter[model.Job]
	invoices  InvoiceStore
	log       *zap.Logger
}

// NewService wires a service to its stores.
func NewService(b *Builder, customers CustomerDirectory, quotes Upserter[model.Quote], jobs Upserter[model.Job], invoices InvoiceStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{builder: b, customers: customers, quotes: quotes, jobs: jobs, invoices: invoices, log: log}
}

// NewServiceFromStores wires a service to the collections of s.
func NewServiceFromStores(b *Builder, s *store.Stores, log *zap.Logger) *Service {
	return NewService(b, s.Customers, s.Quotes, s.Jobs, s.Invoices, log)
}

// SetCatalog swaps the catalog used for pricing and item names. The service
// keeps its own copy.
func (s *Service) SetCatalog(cat model.Catalog) {
	cat = cat.Clone()
	s.mu.Lock()
	s.builder.Catalog = cat
	s.mu.Unlock()
}

// input must be called with s.mu held.

func (s *Service) input(ctx context.Context, req Request) (Input, error) {
	cust, created, err := EnsureCustomer(ctx, s.customers, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return Input{}, err
	}
	if created {
		s.log.Info("customer created",
			zap.String("customer_id", cust.ID),
			zap.String("email", logger.MaskEmail(cust.Email)),
			zap.String("phone", logger.MaskPhone(cust.Phone)),
		)
	}
	return Input{
		Config:   req.Config,
		Costs:    pricing.Compute(req.Config, s.builder.Catalog),
		Customer: cust,
		Notes:    req.Notes,
	}, nil
}

// CreateQuote builds and stores a quote.
func (s *Service) CreateQuote(ctx context.Context, req Request) (model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, err := s.input(ctx, req)
	if err != nil {
		return model.Quote{}, err
	}
	q := s.builder.Quote(in)
	if err := s.quotes.Upsert(ctx, q); err != nil {
		s.log.Warn("quote not saved", zap.String("quote_id", q.ID), zap.Error(err))
		return model.Quote{}, fmt.Errorf("save quote: %w", err)
	}
	s.log.Info("quote created", zap.String("quote_id", q.ID), zap.Float64("total", q.Total))
	return q, nil
}

// CreateJob builds and stores a workshop job.
func (s *Service) CreateJob(ctx context.Context, req Request) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, err := s.input(ctx, req)
	if err != nil {
		return model.Job{}, err
	}
	j := s.builder.Job(in)
	if err := s.jobs.Upsert(ctx, j); err != nil {
		s.log.Warn("job not saved", zap.String("job_id", j.ID), zap.Error(err))
		return model.Job{}, fmt.Errorf("save job: %w", err)
	}
	s.log.Info("job created", zap.String("job_id", j.ID), zap.Int("steps", len(j.Checklist)))
	return j, nil
}

// CreateInvoice builds and stores an invoice numbered after the existing ones.
func (s *Service) CreateInvoice(ctx context.Context, req Request) (model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, err := s.input(ctx, req)
	if err != nil {
		return model.Invoice{}, err
	}
	inv := s.builder.Invoice(in, s.invoices.Len()+1)
	if err := s.invoices.Upsert(ctx, inv); err != nil {
		s.log.Warn("invoice not saved", zap.String("invoice", inv.Number), zap.Error(err))
		return model.Invoice{}, fmt.Errorf("save invoice: %w", err)
	}
	s.log.Info("invoice created", zap.String("invoice", inv.Number), zap.Float64("total", inv.Total))
	return inv, nil
}

// AlertMessage turns a create error into the single message shown to the
// user.
func AlertMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoCustomer):
		return "Enter a customer name before creating a document."
	case errors.Is(err, store.ErrQuotaExceeded):
		return "Storage is full. The record was not saved. Export a backup and remove old records to free space."
	default:
		return "The record could not be saved: " + err.Error()
	}
}
