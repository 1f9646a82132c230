package model

import "github.com/google/uuid"

// ItemKind identifies which catalog list an item belongs to.
type ItemKind string

const (
	KindFrame         ItemKind = "frame"
	KindMat           ItemKind = "mat"
	KindGlazing       ItemKind = "glazing"
	KindPrintMaterial ItemKind = "print"
)

// ParseItemKind maps loose user input (CSV cells, YAML) to an ItemKind.
func ParseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "frame", "frames", "moulding", "molding":
		return KindFrame, true
	case "mat", "mats", "matboard", "passepartout":
		return KindMat, true
	case "glazing", "glass", "acrylic":
		return KindGlazing, true
	case "print", "prints", "printmaterial", "print material", "paper", "canvas":
		return KindPrintMaterial, true
	}
	return "", false
}

// CatalogItem is a priced product the shop can use in a frame build.
// Price is per metre for frames and per square metre for everything else.
type CatalogItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Kind        ItemKind `json:"kind" yaml:"kind"`
	Price       float64  `json:"price" yaml:"price"`
	FaceWidthCm float64  `json:"face_width_cm,omitempty" yaml:"face_width_cm,omitempty"` // frames only
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`                 // "#RRGGBB"
}

func NewCatalogItem(kind ItemKind, name string, price float64) CatalogItem {
	return CatalogItem{
		ID:    uuid.New().String()[:8],
		Name:  name,
		Kind:  kind,
		Price: price,
	}
}

// CatalogSettings holds the shop-wide pricing knobs.
type CatalogSettings struct {
	LabourBase        float64 `json:"labour_base" yaml:"labour_base"`
	MarginMultiplier  float64 `json:"margin_multiplier" yaml:"margin_multiplier"`
	TaxRate           float64 `json:"tax_rate" yaml:"tax_rate"` // 0.2 for 20%
	CurrencyCode      string  `json:"currency_code" yaml:"currency_code"`
	CurrencySymbol    string  `json:"currency_symbol" yaml:"currency_symbol"`
	BackerPricePerSqM float64 `json:"backer_price_per_sqm" yaml:"backer_price_per_sqm"`
}

// Catalog is the read-only price list the configurator works from.
type Catalog struct {
	Frames         []CatalogItem   `json:"frames" yaml:"frames"`
	Mats           []CatalogItem   `json:"mats" yaml:"mats"`
	Glazing        []CatalogItem   `json:"glazing" yaml:"glazing"`
	PrintMaterials []CatalogItem   `json:"print_materials" yaml:"print_materials"`
	Settings       CatalogSettings `json:"settings" yaml:"settings"`
}

// DefaultSettings returns neutral pricing settings: no margin, no tax.
func DefaultSettings() CatalogSettings {
	return CatalogSettings{
		LabourBase:        120,
		MarginMultiplier:  1,
		TaxRate:           0,
		CurrencyCode:      "EUR",
		CurrencySymbol:    "€",
		BackerPricePerSqM: 18,
	}
}

// DefaultCatalog returns a small starter price list.
func DefaultCatalog() Catalog {
	frame := func(name string, price, face float64, color string) CatalogItem {
		it := NewCatalogItem(KindFrame, name, price)
		it.FaceWidthCm = face
		it.Color = color
		return it
	}
	mat := func(name string, price float64, color string) CatalogItem {
		it := NewCatalogItem(KindMat, name, price)
		it.Color = color
		return it
	}
	return Catalog{
		Frames: []CatalogItem{
			frame("Oak Flat 20mm", 120, 2.0, "#B08850"),
			frame("Black Box 30mm", 95, 3.0, "#1E1E1E"),
			frame("Walnut Scoop 40mm", 165, 4.0, "#5C4033"),
			frame("Silver Slim 15mm", 80, 1.5, "#C0C0C0"),
		},
		Mats: []CatalogItem{
			mat("Arctic White", 45, "#F7F7F2"),
			mat("Antique Cream", 45, "#EFE6D2"),
			mat("Charcoal", 52, "#3A3A3A"),
			mat("Navy", 52, "#1F2A44"),
		},
		Glazing: []CatalogItem{
			NewCatalogItem(KindGlazing, "Float Glass 2mm", 250),
			NewCatalogItem(KindGlazing, "UV Museum Glass", 610),
			NewCatalogItem(KindGlazing, "Acrylic 2.5mm", 190),
		},
		PrintMaterials: []CatalogItem{
			NewCatalogItem(KindPrintMaterial, "Matte Fine Art Paper", 60),
			NewCatalogItem(KindPrintMaterial, "Canvas", 85),
		},
		Settings: DefaultSettings(),
	}
}

// Clone returns a deep copy, so edits can be discarded.
func (c Catalog) Clone() Catalog {
	out := c
	out.Frames = append([]CatalogItem(nil), c.Frames...)
	out.Mats = append([]CatalogItem(nil), c.Mats...)
	out.Glazing = append([]CatalogItem(nil), c.Glazing...)
	out.PrintMaterials = append([]CatalogItem(nil), c.PrintMaterials...)
	return out
}

func findItem(items []CatalogItem, id string) (CatalogItem, bool) {
	if id == "" {
		return CatalogItem{}, false
	}
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return CatalogItem{}, false
}

// Frame returns the frame with the given id.
func (c Catalog) Frame(id string) (CatalogItem, bool) { return findItem(c.Frames, id) }

// Mat returns the mat with the given id.
func (c Catalog) Mat(id string) (CatalogItem, bool) { return findItem(c.Mats, id) }

// GlazingItem returns the glazing with the given id.
func (c Catalog) GlazingItem(id string) (CatalogItem, bool) { return findItem(c.Glazing, id) }

// PrintMaterial returns the print material with the given id.
func (c Catalog) PrintMaterial(id string) (CatalogItem, bool) {
	return findItem(c.PrintMaterials, id)
}

// Items returns the list for a kind.
func (c Catalog) Items(kind ItemKind) []CatalogItem {
	switch kind {
	case KindFrame:
		return c.Frames
	case KindMat:
		return c.Mats
	case KindGlazing:
		return c.Glazing
	case KindPrintMaterial:
		return c.PrintMaterials
	}
	return nil
}

// Add appends an item to the list matching its kind. Items with an unknown
// kind are dropped and false is returned.
func (c *Catalog) Add(it CatalogItem) bool {
	switch it.Kind {
	case KindFrame:
		c.Frames = append(c.Frames, it)
	case KindMat:
		c.Mats = append(c.Mats, it)
	case KindGlazing:
		c.Glazing = append(c.Glazing, it)
	case KindPrintMaterial:
		c.PrintMaterials = append(c.PrintMaterials, it)
	default:
		return false
	}
	return true
}

func (c *Catalog) list(kind ItemKind) *[]CatalogItem {
	switch kind {
	case KindFrame:
		return &c.Frames
	case KindMat:
		return &c.Mats
	case KindGlazing:
		return &c.Glazing
	case KindPrintMaterial:
		return &c.PrintMaterials
	}
	return nil
}

// Update replaces the item with the same kind and id.
func (c *Catalog) Update(it CatalogItem) bool {
	items := c.list(it.Kind)
	if items == nil {
		return false
	}
	for i := range *items {
		if (*items)[i].ID == it.ID {
			(*items)[i] = it
			return true
		}
	}
	return false
}

// Remove deletes an item. Configurations still naming it fall back to
// unlisted pricing.
func (c *Catalog) Remove(kind ItemKind, id string) bool {
	items := c.list(kind)
	if items == nil {
		return false
	}
	for i := range *items {
		if (*items)[i].ID == id {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the item names of a kind for UI dropdowns.
func (c Catalog) Names(kind ItemKind) []string {
	items := c.Items(kind)
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

// FindByName returns the first item of a kind with the given name.
func (c Catalog) FindByName(kind ItemKind, name string) (CatalogItem, bool) {
	for _, it := range c.Items(kind) {
		if it.Name == name {
			return it, true
		}
	}
	return CatalogItem{}, false
}
