package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	placeholderBg   = color.RGBA{R: 0xe4, G: 0xe4, B: 0xe0, A: 0xff}
	placeholderLine = color.RGBA{R: 0xc8, G: 0xc8, B: 0xc2, A: 0xff}
	placeholderText = color.RGBA{R: 0x70, G: 0x70, B: 0x6c, A: 0xff}
)

// Placeholder draws the stand-in shown where an image is missing or failed
// to load: a neutral panel with a diagonal cross and a caption.
func Placeholder(w, h int, caption string) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBg), image.Point{}, draw.Src)

	for i := 0; i < w; i++ {
		y := i * h / w
		img.SetRGBA(i, y, placeholderLine)
		img.SetRGBA(i, h-1-y, placeholderLine)
	}

	if caption == "" {
		return img
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(placeholderText), Face: basicfont.Face7x13}
	tw := d.MeasureString(caption).Round()
	if tw+4 > w || h < 17 {
		return img
	}
	x, y := (w-tw)/2, h/2+4
	draw.Draw(img, image.Rect(x-2, y-11, x+tw+2, y+3), image.NewUniform(placeholderBg), image.Point{}, draw.Src)
	d.Dot = fixed.P(x, y)
	d.DrawString(caption)
	return img
}
