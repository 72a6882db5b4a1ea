package render

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette builds a GIF palette with black background at index 0 and n
// particle colors spread around the hue wheel. GIF palettes cap at 256
// entries; beyond that, particle colors repeat.
func Palette(n int) color.Palette {
	const maxColors = 255
	pal := make(color.Palette, 0, n+1)
	pal = append(pal, color.Black)
	for i := 0; i < n && i < maxColors; i++ {
		h := 360.0 * float64(i) / float64(n)
		c := colorful.Hsv(h, 0.85, 0.95)
		r, g, b := c.RGB255()
		pal = append(pal, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return pal
}

// WriteGIF encodes frames as an animated GIF for eyeballing the
// rasterization. delay is in hundredths of a second per frame.
func WriteGIF(w io.Writer, frames []*Frame, delay int) error {
	anim := &gif.GIF{}
	for _, f := range frames {
		pal := Palette(f.NumColors)
		img := image.NewPaletted(image.Rect(0, 0, f.Resolution, f.Resolution), pal)
		for p, idx := range f.Index {
			if idx < 0 {
				continue
			}
			ci := idx + 1
			if ci >= len(pal) {
				ci = (idx % (len(pal) - 1)) + 1
			}
			img.Pix[p] = uint8(ci)
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}
