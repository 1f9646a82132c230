package model

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current version tag written into every stored
// configuration snapshot.
const SchemaVersion = 1

// MaxMats is the number of mat layers a build may stack.
const MaxMats = 3

// LayoutMode names the active mat layout.
type LayoutMode string

const (
	ModeBasic LayoutMode = "basic" // concentric stacked mats with one window
	ModePro   LayoutMode = "pro"   // free-form openings in the mat board
)

// MatLayout is the mat rendering model of a configuration. It is either
// Stacked or Openings; the unexported method keeps the set closed.
type MatLayout interface {
	Mode() LayoutMode
	isMatLayout()
}

// Stacked renders the mat layers as nested borders around the artwork.
type Stacked struct{}

func (Stacked) Mode() LayoutMode { return ModeBasic }
func (Stacked) isMatLayout()     {}

// Openings renders the mat board with independently placed cut-outs.
type Openings struct {
	Items []Opening
}

func (Openings) Mode() LayoutMode { return ModePro }
func (Openings) isMatLayout()     {}

// MatLayer is one mat board in the stack, outermost first.
type MatLayer struct {
	MatID    string  `json:"mat_id"`
	BorderCm float64 `json:"border_cm"`
}

// Active reports whether the layer contributes to geometry and cost.
func (m MatLayer) Active() bool {
	return m.MatID != "" && m.BorderCm > 0
}

// Configuration is the live configurator state; a copy of it is the
// configuration snapshot stored in quotes, jobs, invoices and presets.
type Configuration struct {
	SchemaVersion   int        `json:"schema_version"`
	ArtworkWidthCm  float64    `json:"artwork_width_cm"`
	ArtworkHeightCm float64    `json:"artwork_height_cm"`
	ArtworkRef      string     `json:"artwork_ref,omitempty"`
	FrameID         string     `json:"frame_id"`
	FaceWidthCm     float64    `json:"face_width_cm"`
	Mats            []MatLayer `json:"mats"`
	GlazingID       string     `json:"glazing_id"`
	PrintMaterialID string     `json:"print_material_id"`
	IncludePrint    bool       `json:"include_print"`
	IncludeBacker   bool       `json:"include_backer"`
	Layout          MatLayout  `json:"-"`
}

// NewConfiguration returns a 40 x 30 cm basic build with no selections.
func NewConfiguration() Configuration {
	return Configuration{
		SchemaVersion:   SchemaVersion,
		ArtworkWidthCm:  40,
		ArtworkHeightCm: 30,
		FaceWidthCm:     2,
		Mats:            []MatLayer{},
		Layout:          Stacked{},
	}
}

// ActiveMats returns the active mat layers, outermost first, capped at MaxMats.
func (c Configuration) ActiveMats() []MatLayer {
	var out []MatLayer
	for i, m := range c.Mats {
		if i >= MaxMats {
			break
		}
		if m.Active() {
			out = append(out, m)
		}
	}
	return out
}

// MatBorderTotal is the summed border width of all active mats.
func (c Configuration) MatBorderTotal() float64 {
	var total float64
	for _, m := range c.ActiveMats() {
		total += m.BorderCm
	}
	return total
}

// VisibleSize is the artwork plus both borders of every active mat.
func (c Configuration) VisibleSize() (float64, float64) {
	b := c.MatBorderTotal()
	return c.ArtworkWidthCm + 2*b, c.ArtworkHeightCm + 2*b
}

// OuterSize is the visible area plus the frame face on both sides.
func (c Configuration) OuterSize() (float64, float64) {
	w, h := c.VisibleSize()
	return w + 2*c.FaceWidthCm, h + 2*c.FaceWidthCm
}

// Mode returns the active layout mode, treating a nil layout as basic.
func (c Configuration) Mode() LayoutMode {
	if c.Layout == nil {
		return ModeBasic
	}
	return c.Layout.Mode()
}

// OpeningList returns the openings of a pro layout, or nil in basic mode.
func (c Configuration) OpeningList() []Opening {
	if o, ok := c.Layout.(Openings); ok {
		return o.Items
	}
	return nil
}

// Clone returns a deep copy safe to hand to a record.
func (c Configuration) Clone() Configuration {
	out := c
	out.Mats = append([]MatLayer(nil), c.Mats...)
	if o, ok := c.Layout.(Openings); ok {
		out.Layout = Openings{Items: CopyOpenings(o.Items)}
	}
	return out
}

type layoutJSON struct {
	Mode     LayoutMode `json:"mode"`
	Openings []Opening  `json:"openings,omitempty"`
}

type configurationAlias Configuration

type configurationJSON struct {
	configurationAlias
	Layout layoutJSON `json:"layout"`
}

// MarshalJSON flattens the layout variant into a tagged object.
func (c Configuration) MarshalJSON() ([]byte, error) {
	out := configurationJSON{configurationAlias: configurationAlias(c)}
	out.Layout.Mode = c.Mode()
	out.Layout.Openings = c.OpeningList()
	return json.Marshal(out)
}

// UnmarshalJSON restores the layout variant from its tag.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var in configurationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Configuration(in.configurationAlias)
	switch in.Layout.Mode {
	case ModeBasic, "":
		c.Layout = Stacked{}
	case ModePro:
		c.Layout = Openings{Items: in.Layout.Openings}
	default:
		return fmt.Errorf("unknown mat layout mode %q", in.Layout.Mode)
	}
	return nil
}
