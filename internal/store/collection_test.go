package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FrameShop/internal/model"
)

func TestCollectionUpsertPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "customers.json")

	c, err := OpenCollection[model.Customer](path, 0)
	require.NoError(t, err)
	assert.Equal(t, "customers", c.Name())

	ada := model.NewCustomer("Ada", "ada@example.com", "")
	require.NoError(t, c.Upsert(ctx, ada))
	ada.Phone = "555-0100"
	require.NoError(t, c.Upsert(ctx, ada))
	require.NoError(t, c.Upsert(ctx, model.NewCustomer("Grace", "", "")))
	assert.Equal(t, 2, c.Len())

	reopened, err := OpenCollection[model.Customer](path, 0)
	require.NoError(t, err)
	got, err := reopened.Get(ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, "Ada", reopened.All()[0].Name, "insertion order kept")

	found, ok := reopened.Find(func(c model.Customer) bool { return c.Name == "Grace" })
	assert.True(t, ok)
	assert.Equal(t, "Grace", found.Name)
}

func TestCollectionQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quotes.json")

	c, err := OpenCollection[model.Customer](path, 200)
	require.NoError(t, err)
	require.NoError(t, c.Upsert(ctx, model.NewCustomer("A", "", "")))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	big := model.NewCustomer(string(make([]byte, 300)), "", "")
	err = c.Upsert(ctx, big)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "file untouched")
	assert.Equal(t, 1, c.Len(), "memory untouched")
}

func TestCollectionGetMissing(t *testing.T) {
	c, err := OpenCollection[model.Customer](filepath.Join(t.TempDir(), "c.json"), 0)
	require.NoError(t, err)
	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionRejectsEmptyIDAndCancelledContext(t *testing.T) {
	c, err := OpenCollection[model.Customer](filepath.Join(t.TempDir(), "c.json"), 0)
	require.NoError(t, err)
	assert.Error(t, c.Upsert(context.Background(), model.Customer{Name: "no id"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Upsert(ctx, model.NewCustomer("x", "", "")), context.Canceled)
}

func TestOpenCollectionNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":9,"records":[]}`), 0644))
	_, err := OpenCollection[model.Job](path, 0)
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
}
