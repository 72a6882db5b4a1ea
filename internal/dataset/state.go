package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FlattenHalves reshapes a [particles × fields] table into a single
// vector laid out as all position-like components followed by all
// momentum-like components. The trailing dimension is split in half
// column-wise; each half is flattened particle-major, so a table with P
// rows and 2d columns becomes [q_1..q_Pd, p_1..p_Pd].
//
// The number of columns must be even.
func FlattenHalves(tab mat.Matrix) ([]float64, error) {
	rows, cols := tab.Dims()
	if cols%2 != 0 {
		return nil, fmt.Errorf("%w: expected an even number of columns, got %d", ErrShape, cols)
	}
	dim := cols / 2
	out := make([]float64, rows*cols)
	for p := 0; p < rows; p++ {
		for d := 0; d < dim; d++ {
			out[p*dim+d] = tab.At(p, d)
			out[rows*dim+p*dim+d] = tab.At(p, dim+d)
		}
	}
	return out, nil
}
