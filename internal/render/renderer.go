// Package render rasterizes 2-D particle positions onto a square pixel
// canvas, one filled disk per particle, colored by particle identity.
package render

import (
	"fmt"
	"math"
)

// Point is a particle position in world coordinates.
type Point struct {
	X, Y float64
}

// Options control the rasterization of one sequence.
type Options struct {
	Resolution int     // canvas edge in pixels
	Radius     float64 // disk radius in world units
	NumColors  int     // distinct particle colors, usually the particle count
}

func (o Options) validate() error {
	if o.Resolution < 1 {
		return fmt.Errorf("render: resolution must be >= 1, got %d", o.Resolution)
	}
	if o.Radius <= 0 {
		return fmt.Errorf("render: particle radius must be > 0, got %g", o.Radius)
	}
	if o.NumColors < 1 {
		return fmt.Errorf("render: need at least one color, got %d", o.NumColors)
	}
	return nil
}

// Frame is one rasterized timestep: a row-major resolution² plane of
// particle color indices, -1 where no disk covers the pixel.
type Frame struct {
	Resolution int
	NumColors  int
	Index      []int
}

// At returns the color index at (row, col), -1 for background.
func (f *Frame) At(row, col int) int {
	return f.Index[row*f.Resolution+col]
}

// Bytes returns the 8-bit intensity plane. A pixel holding color index i
// has value (i+1)/NumColors scaled by 255 with integer truncation;
// background stays 0.
func (f *Frame) Bytes() []byte {
	out := make([]byte, len(f.Index))
	for p, idx := range f.Index {
		if idx < 0 {
			continue
		}
		out[p] = byte(float64(idx+1) / float64(f.NumColors) * 255.0)
	}
	return out
}

// Sequence rasterizes one position sequence. The canvas represents the
// world square [-boxLength/2, +boxLength/2] on both axes, mapped
// linearly to [0, resolution). Particles are drawn in increasing index
// order, so in overlaps the higher index wins. Disks that fall partly or
// wholly outside the canvas are clipped, never an error.
func Sequence(positions [][]Point, boxLength float64, opts Options) ([]*Frame, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if boxLength <= 0 {
		return nil, fmt.Errorf("render: box length must be > 0, got %g", boxLength)
	}

	frames := make([]*Frame, len(positions))
	for t, pts := range positions {
		frames[t] = rasterize(pts, boxLength, opts)
	}
	return frames, nil
}

func rasterize(pts []Point, boxLength float64, opts Options) *Frame {
	res := opts.Resolution
	f := &Frame{
		Resolution: res,
		NumColors:  opts.NumColors,
		Index:      make([]int, res*res),
	}
	for p := range f.Index {
		f.Index[p] = -1
	}

	scale := float64(res) / boxLength
	rPix := opts.Radius * scale

	for i, pt := range pts {
		// World origin sits at the canvas center.
		cx := (pt.X + boxLength/2) * scale
		cy := (pt.Y + boxLength/2) * scale
		drawDisk(f, cx, cy, rPix, i)
	}
	return f
}

// drawDisk fills every pixel whose center lies within the disk, clipping
// the bounding box to the canvas.
func drawDisk(f *Frame, cx, cy, r float64, colorIdx int) {
	res := f.Resolution
	rowLo := clamp(int(math.Floor(cy-r)), 0, res-1)
	rowHi := clamp(int(math.Ceil(cy+r)), 0, res-1)
	colLo := clamp(int(math.Floor(cx-r)), 0, res-1)
	colHi := clamp(int(math.Ceil(cx+r)), 0, res-1)

	// Fully off-canvas disks contribute nothing.
	if cy+r < 0 || cy-r > float64(res) || cx+r < 0 || cx-r > float64(res) {
		return
	}

	r2 := r * r
	for row := rowLo; row <= rowHi; row++ {
		dy := float64(row) + 0.5 - cy
		for col := colLo; col <= colHi; col++ {
			dx := float64(col) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				f.Index[row*res+col] = colorIdx
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
