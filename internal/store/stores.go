package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/piwi3910/FrameShop/internal/model"
)

// Stores opens the record collections of one data directory.
type Stores struct {
	Dir       string
	Customers *Collection[model.Customer]
	Quotes    *Collection[model.Quote]
	Jobs      *Collection[model.Job]
	Invoices  *Collection[model.Invoice]
}

// Open loads or creates every collection under dir with the given quota.
func Open(dir string, quota int64) (*Stores, error) {
	s := &Stores{Dir: dir}
	var err error
	if s.Customers, err = OpenCollection[model.Customer](filepath.Join(dir, "customers.json"), quota); err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	if s.Quotes, err = OpenCollection[model.Quote](filepath.Join(dir, "quotes.json"), quota); err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	if s.Jobs, err = OpenCollection[model.Job](filepath.Join(dir, "jobs.json"), quota); err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	if s.Invoices, err = OpenCollection[model.Invoice](filepath.Join(dir, "invoices.json"), quota); err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	return s, nil
}

// CatalogPath returns the price list path inside the data directory.
func (s *Stores) CatalogPath() string { return filepath.Join(s.Dir, CatalogFile) }

// PresetPath returns the preset store path inside the data directory.
func (s *Stores) PresetPath() string { return filepath.Join(s.Dir, PresetFile) }

// Backup collects the records of every collection into a BackupData.
func (s *Stores) Backup(cfg model.AppConfig, cat model.Catalog, presets model.PresetStore) BackupData {
	return BackupData{
		Config:    cfg,
		Catalog:   cat,
		Presets:   presets,
		Customers: s.Customers.All(),
		Quotes:    s.Quotes.All(),
		Jobs:      s.Jobs.All(),
		Invoices:  s.Invoices.All(),
	}
}

// Restore upserts every record of a backup. Records already present with
// the same id are replaced.
func (s *Stores) Restore(ctx context.Context, b BackupData) error {
	for _, c := range b.Customers {
		if err := s.Customers.Upsert(ctx, c); err != nil {
			return fmt.Errorf("restore customers: %w", err)
		}
	}
	for _, q := range b.Quotes {
		if err := s.Quotes.Upsert(ctx, q); err != nil {
			return fmt.Errorf("restore quotes: %w", err)
		}
	}
	for _, j := range b.Jobs {
		if err := s.Jobs.Upsert(ctx, j); err != nil {
			return fmt.Errorf("restore jobs: %w", err)
		}
	}
	for _, i := range b.Invoices {
		if err := s.Invoices.Upsert(ctx, i); err != nil {
			return fmt.Errorf("restore invoices: %w", err)
		}
	}
	return nil
}
