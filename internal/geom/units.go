// Package geom holds the unit conversions and snapping helpers shared by the
// pricing engine, the opening layout model and the compositor.
//
// All lengths are centimetres unless a function name says otherwise.
package geom

import "math"

// CmPerInch is the exact metric length of one inch.
const CmPerInch = 2.54

// MaxLengthCm is the longest dimension accepted anywhere, 100 m. Larger
// values overflow area and price products.
const MaxLengthCm = 10000

// CmToIn converts centimetres to inches.
func CmToIn(cm float64) float64 {
	return cm / CmPerInch
}

// InToCm converts inches to centimetres.
func InToCm(in float64) float64 {
	return in * CmPerInch
}

// PerimeterMeters returns the perimeter of a w x h cm rectangle in metres.
func PerimeterMeters(w, h float64) float64 {
	return 2 * (w + h) / 100
}

// AreaSqM returns the area of a w x h cm rectangle in square metres.
func AreaSqM(w, h float64) float64 {
	return (w / 100) * (h / 100)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Positive reports whether v is finite and greater than zero.
func Positive(v float64) bool {
	return Finite(v) && v > 0
}

// ValidLength reports whether v is usable as a physical dimension: finite,
// positive and at most MaxLengthCm. Callers keep their previous value when
// this returns false.
func ValidLength(v float64) bool {
	return Positive(v) && v <= MaxLengthCm
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
