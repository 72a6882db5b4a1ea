package dataset

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testConverter() *Converter {
	return &Converter{BoxLength: 10.0, Resolution: 16, Radius: 0.5}
}

func TestConvert_StateAndDerivative(t *testing.T) {
	// Two particles with distinct values in every field.
	frame := mat.NewDense(2, 6, []float64{
		// x, y, vx, vy, fx, fy
		0.1, 0.2, 0.3, 0.4, 0.5, 0.6,
		1.1, 1.2, 1.3, 1.4, 1.5, 1.6,
	})

	rec, err := testConverter().Convert([]*mat.Dense{frame, frame})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if len(rec.X) != 2 || len(rec.DxDt) != 2 || len(rec.Image) != 2 {
		t.Fatalf("sequence lengths = %d/%d/%d, want 2/2/2",
			len(rec.X), len(rec.DxDt), len(rec.Image))
	}

	// Positions then momenta, particle-major within each half.
	wantX := []float64{0.1, 0.2, 1.1, 1.2, 0.3, 0.4, 1.3, 1.4}
	// Velocities then forces.
	wantDx := []float64{0.3, 0.4, 1.3, 1.4, 0.5, 0.6, 1.5, 1.6}

	for i := range wantX {
		if rec.X[0][i] != wantX[i] {
			t.Errorf("X[0][%d] = %v, want %v", i, rec.X[0][i], wantX[i])
		}
		if rec.DxDt[0][i] != wantDx[i] {
			t.Errorf("DxDt[0][%d] = %v, want %v", i, rec.DxDt[0][i], wantDx[i])
		}
	}
}

func TestConvert_ImageScaling(t *testing.T) {
	// Two particles far apart inside the box, so both disks land on
	// the canvas without overlapping.
	frame := mat.NewDense(2, 6, []float64{
		-2.0, -2.0, 0, 0, 0, 0,
		2.0, 2.0, 0, 0, 0, 0,
	})

	rec, err := testConverter().Convert([]*mat.Dense{frame})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	img := rec.Image[0]
	if len(img) != 16*16 {
		t.Fatalf("image length = %d, want %d", len(img), 16*16)
	}

	// With two colors, pixel values are 0 (background), 127 (particle
	// 0, 1/2 scaled by 255 truncated) or 255 (particle 1).
	counts := map[byte]int{}
	for _, v := range img {
		counts[v]++
	}
	for v := range counts {
		if v != 0 && v != 127 && v != 255 {
			t.Errorf("unexpected pixel value %d", v)
		}
	}
	if counts[127] == 0 {
		t.Error("particle 0 left no pixels")
	}
	if counts[255] == 0 {
		t.Error("particle 1 left no pixels")
	}
}

func TestConvert_ShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		window []*mat.Dense
	}{
		{"empty window", nil},
		{"five fields", []*mat.Dense{mat.NewDense(2, 5, nil)}},
		{"seven fields", []*mat.Dense{mat.NewDense(2, 7, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := testConverter().Convert(tt.window); !errors.Is(err, ErrShape) {
				t.Errorf("Convert() error = %v, want ErrShape", err)
			}
		})
	}
}
