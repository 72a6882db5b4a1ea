// Package trajectory reads text-based LAMMPS trajectory dumps into
// in-memory per-timestep particle tables.
//
// A dump is a sequence of fixed-size blocks, one per timestep. Each block
// carries a 9-line header (timestep index, particle count, box bounds,
// column names) followed by one line per particle. The whole file is read
// into memory at once; this is a reference pipeline, not a streaming one.
package trajectory

import "gonum.org/v1/gonum/mat"

// Column indices within a parsed frame, after the leading id and type
// columns have been dropped.
const (
	FieldX = iota
	FieldY
	FieldVX
	FieldVY
	FieldFX
	FieldFY
	NumFields
)

// Trajectory is one fully parsed dump: every timestep as a
// [particles × NumFields] table, plus the edge length of the
// origin-centered simulation box.
type Trajectory struct {
	Frames    []*mat.Dense
	BoxLength float64

	// Dropped counts input lines discarded from a trailing partial
	// block. Truncation is silent by policy; callers that want to
	// surface it can report this count.
	Dropped int
}

func (t *Trajectory) NumFrames() int { return len(t.Frames) }

func (t *Trajectory) NumParticles() int {
	if len(t.Frames) == 0 {
		return 0
	}
	r, _ := t.Frames[0].Dims()
	return r
}
