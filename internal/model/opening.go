package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Shape is the cut-out shape of a mat opening.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeOval
	ShapeCircle
)

func (s Shape) String() string {
	switch s {
	case ShapeOval:
		return "oval"
	case ShapeCircle:
		return "circle"
	default:
		return "rect"
	}
}

// ParseShape converts a shape name back to a Shape.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rect", "rectangle", "":
		return ShapeRect, nil
	case "oval", "ellipse":
		return ShapeOval, nil
	case "circle", "round":
		return ShapeCircle, nil
	}
	return ShapeRect, fmt.Errorf("unknown opening shape %q", s)
}

// MarshalText encodes the shape by name so stored snapshots stay readable.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a shape name.
func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Minimum opening size in cm.
const (
	MinOpeningWidthCm  = 2.0
	MinOpeningHeightCm = 2.0
)

// Opening is a cut-out in the mat board, positioned relative to the top-left
// corner of the visible mat area.
type Opening struct {
	ID       string  `json:"id"`
	Shape    Shape   `json:"shape"`
	XCm      float64 `json:"x_cm"`
	YCm      float64 `json:"y_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	ImageRef string  `json:"image_ref,omitempty"` // file path of the picture shown in this opening
}

func NewOpening(shape Shape, x, y, w, h float64) Opening {
	if shape == ShapeCircle {
		if w > h {
			h = w
		} else {
			w = h
		}
	}
	return Opening{
		ID:       uuid.New().String()[:8],
		Shape:    shape,
		XCm:      x,
		YCm:      y,
		WidthCm:  w,
		HeightCm: h,
	}
}

// CenterCm returns the centre of the opening.
func (o Opening) CenterCm() (float64, float64) {
	return o.XCm + o.WidthCm/2, o.YCm + o.HeightCm/2
}

// Fits reports whether the opening satisfies the containment, minimum size
// and circle invariants for a visible area of w x h cm. eps absorbs
// floating point noise.
func (o Opening) Fits(w, h, eps float64) bool {
	if o.XCm < -eps || o.YCm < -eps {
		return false
	}
	if o.XCm+o.WidthCm > w+eps || o.YCm+o.HeightCm > h+eps {
		return false
	}
	if o.WidthCm < MinOpeningWidthCm-eps || o.HeightCm < MinOpeningHeightCm-eps {
		return false
	}
	if o.Shape == ShapeCircle && (o.WidthCm-o.HeightCm > eps || o.HeightCm-o.WidthCm > eps) {
		return false
	}
	return true
}

// CopyOpenings returns an independent copy of the slice.
func CopyOpenings(in []Opening) []Opening {
	if in == nil {
		return nil
	}
	out := make([]Opening, len(in))
	copy(out, in)
	return out
}
