package trajectory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrParse indicates malformed trajectory text.
var ErrParse = errors.New("trajectory: malformed input")

// headerSize is the fixed number of header lines preceding the particle
// rows of every timestep block.
const headerSize = 9

// skipCols is the number of leading per-particle columns (id, type)
// dropped during parsing.
const skipCols = 2

// Header line offsets within the first block.
const (
	particleCountLine = 3
	boxBoundsLine     = 5
)

// Parse reads a LAMMPS text dump from path.
func Parse(path string) (*Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseLines(strings.Split(string(data), "\n"))
}

// Read parses a LAMMPS text dump from r.
func Read(r io.Reader) (*Trajectory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseLines(strings.Split(string(data), "\n"))
}

// parseLines extracts the particle count and box bounds from the first
// block's fixed header offsets, then parses whole blocks of
// headerSize+numParticles lines. A trailing partial block is dropped, not
// an error; the count of discarded lines is recorded on the trajectory.
func parseLines(lines []string) (*Trajectory, error) {
	if len(lines) <= headerSize {
		return nil, fmt.Errorf("%w: expected at least one %d-line block header, got %d lines",
			ErrParse, headerSize, len(lines))
	}

	numParticles, err := strconv.Atoi(strings.TrimSpace(lines[particleCountLine]))
	if err != nil {
		return nil, fmt.Errorf("%w: particle count on line %d: %v", ErrParse, particleCountLine+1, err)
	}
	if numParticles < 1 {
		return nil, fmt.Errorf("%w: particle count must be positive, got %d", ErrParse, numParticles)
	}

	boxLength, err := parseBoxLength(lines[boxBoundsLine])
	if err != nil {
		return nil, err
	}

	recordSize := headerSize + numParticles
	numFrames := len(lines) / recordSize

	traj := &Trajectory{
		Frames:    make([]*mat.Dense, 0, numFrames),
		BoxLength: boxLength,
		Dropped:   len(lines) - numFrames*recordSize,
	}
	for i := 0; i < numFrames; i++ {
		frame, err := parseFrame(lines, i*recordSize+headerSize, numParticles)
		if err != nil {
			return nil, err
		}
		traj.Frames = append(traj.Frames, frame)
	}
	return traj, nil
}

// parseBoxLength reads "<lo> <hi>" and returns hi-lo. Only the first
// block's x bounds are consulted; the box is assumed constant and
// symmetric about the origin.
func parseBoxLength(line string) (float64, error) {
	bounds := strings.Fields(line)
	if len(bounds) < 2 {
		return 0, fmt.Errorf("%w: box bounds line %d: expected \"lo hi\", got %q",
			ErrParse, boxBoundsLine+1, line)
	}
	lo, err := strconv.ParseFloat(bounds[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: box lower bound: %v", ErrParse, err)
	}
	hi, err := strconv.ParseFloat(bounds[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: box upper bound: %v", ErrParse, err)
	}
	return hi - lo, nil
}

func parseFrame(lines []string, base, numParticles int) (*mat.Dense, error) {
	frame := mat.NewDense(numParticles, NumFields, nil)
	for p := 0; p < numParticles; p++ {
		lineNo := base + p
		cols := strings.Fields(lines[lineNo])
		if len(cols) < skipCols+NumFields {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d",
				ErrParse, lineNo+1, skipCols+NumFields, len(cols))
		}
		for f := 0; f < NumFields; f++ {
			v, err := strconv.ParseFloat(cols[skipCols+f], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v",
					ErrParse, lineNo+1, skipCols+f+1, err)
			}
			frame.Set(p, f, v)
		}
	}
	return frame, nil
}
