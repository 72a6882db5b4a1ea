package dataset

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/mmrahman-utexas/slvm-data-generation/internal/trajectory"
)

// Params control subsampling, windowing and the train/test split.
type Params struct {
	WindowLen int   // timesteps per sequence, >= 1
	NumTrain  int   // windows in the train split
	NumTest   int   // windows in the test split
	Stride    int   // keep every Stride-th timestep, >= 1
	Shuffle   bool  // permute windows before splitting
	Seed      int64 // seed for the shuffle permutation
	Workers   int   // conversion workers, <= 0 means NumCPU
}

// Assembler holds the windowed view of a trajectory and produces the
// train and test record streams. All validation happens in New; once an
// Assembler exists, both splits are well-defined and disjoint.
type Assembler struct {
	conv    *Converter
	windows [][]*mat.Dense
	p       Params
}

// New subsamples the trajectory by stride, cuts it into WindowLen-sized
// windows (a trailing remainder is truncated), applies the seeded
// shuffle, and checks that enough windows exist for the requested split.
//
// The shuffle uses a generator seeded explicitly from Params.Seed, so an
// identical seed always yields an identical partition.
func New(traj *trajectory.Trajectory, conv *Converter, p Params) (*Assembler, error) {
	if p.WindowLen < 1 {
		return nil, fmt.Errorf("%w: window length must be >= 1, got %d", ErrConfig, p.WindowLen)
	}
	if p.Stride < 1 {
		return nil, fmt.Errorf("%w: stride must be >= 1, got %d", ErrConfig, p.Stride)
	}
	if p.NumTrain < 0 || p.NumTest < 0 {
		return nil, fmt.Errorf("%w: split sizes must be >= 0, got train %d, test %d",
			ErrConfig, p.NumTrain, p.NumTest)
	}

	sub := make([]*mat.Dense, 0, (len(traj.Frames)+p.Stride-1)/p.Stride)
	for i := 0; i < len(traj.Frames); i += p.Stride {
		sub = append(sub, traj.Frames[i])
	}

	numWindows := len(sub) / p.WindowLen
	windows := make([][]*mat.Dense, numWindows)
	for w := range windows {
		windows[w] = sub[w*p.WindowLen : (w+1)*p.WindowLen]
	}

	if p.Shuffle {
		rng := rand.New(rand.NewSource(p.Seed))
		rng.Shuffle(len(windows), func(i, j int) {
			windows[i], windows[j] = windows[j], windows[i]
		})
	}

	if want := p.NumTrain + p.NumTest; numWindows < want {
		return nil, fmt.Errorf("%w: trajectory yields %d windows, need %d (train %d + test %d)",
			ErrInsufficientData, numWindows, want, p.NumTrain, p.NumTest)
	}

	return &Assembler{conv: conv, windows: windows, p: p}, nil
}

// NumWindows reports the total window count after subsampling and
// truncation, before splitting.
func (a *Assembler) NumWindows() int { return len(a.windows) }

// Train returns the record stream for the first NumTrain windows.
func (a *Assembler) Train() *Stream {
	return newStream(a.conv, a.windows[:a.p.NumTrain], a.p.Workers)
}

// Test returns the record stream for the NumTest windows following the
// train split.
func (a *Assembler) Test() *Stream {
	return newStream(a.conv, a.windows[a.p.NumTrain:a.p.NumTrain+a.p.NumTest], a.p.Workers)
}
