package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mmrahman-utexas/slvm-data-generation/internal/render"
	"github.com/mmrahman-utexas/slvm-data-generation/internal/trajectory"
)

// spatialDim is the number of spatial dimensions per particle in the
// dump format (x, y).
const spatialDim = 2

// Record is one dataset entry: a fixed-length sequence of state vectors,
// their time derivatives, and one rasterized frame per step. State
// vectors have length 4N for N particles, positions first, momenta
// second. Image frames are resolution² bytes each, row-major, already
// scaled to the 8-bit range.
type Record struct {
	X     [][]float64 `json:"x"`
	DxDt  [][]float64 `json:"dx_dt"`
	Image [][]byte    `json:"image"`
}

// Converter turns one window of raw timestep tables into a Record.
// A Converter is read-only after construction and safe for concurrent
// use by stream workers.
type Converter struct {
	BoxLength  float64
	Resolution int
	Radius     float64
}

// Convert builds the state and derivative sequences for one window and
// rasterizes the position components of every step.
//
// Velocity columns appear in both outputs: as the momentum half of x and
// as the position-derivative half of dx_dt. Forces are the momentum
// derivatives. Each input table must have exactly the six dump fields
// (x, y, vx, vy, fx, fy).
func (c *Converter) Convert(window []*mat.Dense) (*Record, error) {
	steps := len(window)
	if steps == 0 {
		return nil, fmt.Errorf("%w: empty window", ErrShape)
	}
	numParticles, fields := window[0].Dims()
	if fields != trajectory.NumFields {
		return nil, fmt.Errorf("%w: expected %d fields per particle, got %d",
			ErrShape, trajectory.NumFields, fields)
	}

	rec := &Record{
		X:    make([][]float64, steps),
		DxDt: make([][]float64, steps),
	}
	positions := make([][]render.Point, steps)
	for t, frame := range window {
		x, err := FlattenHalves(frame.Slice(0, numParticles, trajectory.FieldX, trajectory.FieldVY+1))
		if err != nil {
			return nil, err
		}
		dxdt, err := FlattenHalves(frame.Slice(0, numParticles, trajectory.FieldVX, trajectory.FieldFY+1))
		if err != nil {
			return nil, err
		}
		rec.X[t] = x
		rec.DxDt[t] = dxdt

		// The position half of x is [x_1, y_1, ..., x_N, y_N].
		pts := make([]render.Point, numParticles)
		for p := 0; p < numParticles; p++ {
			pts[p] = render.Point{X: x[p*spatialDim], Y: x[p*spatialDim+1]}
		}
		positions[t] = pts
	}

	frames, err := render.Sequence(positions, c.BoxLength, render.Options{
		Resolution: c.Resolution,
		Radius:     c.Radius,
		NumColors:  numParticles,
	})
	if err != nil {
		return nil, err
	}
	rec.Image = make([][]byte, steps)
	for t, f := range frames {
		rec.Image[t] = f.Bytes()
	}
	return rec, nil
}
