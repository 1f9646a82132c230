package document

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/store"
)

type memStore[T model.Customer | model.Quote | model.Job | model.Invoice] struct {
	records []T
	err     error
}

func (m *memStore[T]) Upsert(_ context.Context, rec T) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore[T]) Len() int { return len(m.records) }

type memCustomers struct {
	memStore[model.Customer]
}

func (m *memCustomers) Find(match func(model.Customer) bool) (model.Customer, bool) {
	for _, c := range m.records {
		if match(c) {
			return c, true
		}
	}
	return model.Customer{}, false
}

func TestEnsureCustomerCreatesOnce(t *testing.T) {
	ctx := context.Background()
	dir := &memCustomers{}

	first, created, err := EnsureCustomer(ctx, dir, "  Ada Lovelace ", "ada@example.com", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ada Lovelace", first.Name)

	again, created, err := EnsureCustomer(ctx, dir, "ada lovelace", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, dir.records, 1)

	_, _, err = EnsureCustomer(ctx, dir, "   ", "", "")
	assert.ErrorIs(t, err, ErrNoCustomer)
}

func TestServiceCreatesAllDocuments(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	customers := &memCustomers{}
	quotes := &memStore[model.Quote]{}
	jobs := &memStore[model.Job]{}
	invoices := &memStore[model.Invoice]{}
	svc := NewService(fixedBuilder(), customers, quotes, jobs, invoices, zap.New(core))

	req := Request{Config: testConfig(), CustomerName: "Ada", CustomerEmail: "ada@example.com"}

	q, err := svc.CreateQuote(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 318.0, q.Total)

	_, err = svc.CreateJob(ctx, req)
	require.NoError(t, err)

	inv, err := svc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", inv.Number)
	inv2, err := svc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0002", inv2.Number)

	assert.Len(t, customers.records, 1)
	assert.Len(t, quotes.records, 1)
	assert.Len(t, jobs.records, 1)
	assert.Len(t, invoices.records, 2)

	created := logs.FilterMessage("customer created").All()
	require.Len(t, created, 1)
	assert.Equal(t, "a***@example.com", created[0].ContextMap()["email"])
}

func TestServiceStoreFailure(t *testing.T) {
	ctx := context.Background()
	quotes := &memStore[model.Quote]{err: errors.New("disk on fire")}
	svc := NewService(fixedBuilder(), &memCustomers{}, quotes, &memStore[model.Job]{}, &memStore[model.Invoice]{}, nil)

	_, err := svc.CreateQuote(ctx, Request{Config: testConfig(), CustomerName: "Ada"})
	require.Error(t, err)
	assert.Equal(t, "The record could not be saved: save quote: disk on fire", AlertMessage(err))
}

func TestServiceQuotaExceededAlert(t *testing.T) {
	ctx := context.Background()
	stores, err := store.Open(filepath.Join(t.TempDir(), "data"), 600)
	require.NoError(t, err)
	svc := NewServiceFromStores(fixedBuilder(), stores, nil)

	_, err = svc.CreateQuote(ctx, Request{Config: testConfig(), CustomerName: "Ada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	assert.Equal(t, "Storage is full. The record was not saved. Export a backup and remove old records to free space.", AlertMessage(err))
	assert.Equal(t, 0, stores.Quotes.Len())
	assert.Equal(t, 1, stores.Customers.Len(), "the customer fits the quota")
}

func TestServiceConcurrentInvoicesGetDistinctNumbers(t *testing.T) {
	ctx := context.Background()
	stores, err := store.Open(filepath.Join(t.TempDir(), "data"), 0)
	require.NoError(t, err)
	svc := NewServiceFromStores(NewBuilder(testCatalog()), stores, nil)

	const n = 8
	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := svc.CreateInvoice(ctx, Request{Config: testConfig(), CustomerName: "Ada"})
			numbers[i], errs[i] = inv.Number, err
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.SetCatalog(model.DefaultCatalog())
	}()
	wg.Wait()

	seen := map[string]bool{}
	for i := range numbers {
		require.NoError(t, errs[i])
		assert.False(t, seen[numbers[i]], "duplicate %s", numbers[i])
		seen[numbers[i]] = true
	}
	assert.Equal(t, n, stores.Invoices.Len())
	assert.Equal(t, 1, stores.Customers.Len(), "one customer for one name")
}

func TestServiceKeepsItsOwnCatalog(t *testing.T) {
	svc := NewService(fixedBuilder(), &memCustomers{}, &memStore[model.Quote]{}, &memStore[model.Job]{}, &memStore[model.Invoice]{}, nil)
	cat := testCatalog()
	svc.SetCatalog(cat)
	cat.Frames[0].Price = 0

	q, err := svc.CreateQuote(context.Background(), Request{Config: testConfig(), CustomerName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, 318.0, q.Total)
}

func TestAlertMessages(t *testing.T) {
	assert.Equal(t, "", AlertMessage(nil))
	assert.Contains(t, AlertMessage(ErrNoCustomer), "customer name")
}
