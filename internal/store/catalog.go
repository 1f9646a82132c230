package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/FrameShop/internal/model"
)

// CatalogFile is the price list file name inside the data directory.
const CatalogFile = "catalog.yaml"

// LoadCatalog reads the YAML price list at path. A missing file yields the
// starter catalog. Items without an id get one, and an unset margin
// multiplier defaults to 1.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultCatalog(), nil
		}
		return model.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	var cat model.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", filepath.Base(path), err)
	}
	normalizeCatalog(&cat)
	return cat, nil
}

// SaveCatalog writes the price list as YAML.
func SaveCatalog(path string, cat model.Catalog) error {
	data, err := yaml.Marshal(cat)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

func normalizeCatalog(cat *model.Catalog) {
	fix := func(items []model.CatalogItem, kind model.ItemKind) []model.CatalogItem {
		if items == nil {
			return []model.CatalogItem{}
		}
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = uuid.New().String()[:8]
			}
			items[i].Kind = kind
		}
		return items
	}
	cat.Frames = fix(cat.Frames, model.KindFrame)
	cat.Mats = fix(cat.Mats, model.KindMat)
	cat.Glazing = fix(cat.Glazing, model.KindGlazing)
	cat.PrintMaterials = fix(cat.PrintMaterials, model.KindPrintMaterial)

	d := model.DefaultSettings()
	if cat.Settings.MarginMultiplier <= 0 {
		cat.Settings.MarginMultiplier = 1
	}
	if cat.Settings.CurrencyCode == "" {
		cat.Settings.CurrencyCode = d.CurrencyCode
		cat.Settings.CurrencySymbol = d.CurrencySymbol
	}
}
