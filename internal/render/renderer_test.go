package render

import (
	"bytes"
	"image/gif"
	"testing"
)

func TestSequence_CenterDisk(t *testing.T) {
	frames, err := Sequence([][]Point{{{X: 0, Y: 0}}}, 10.0, Options{
		Resolution: 32,
		Radius:     1.0,
		NumColors:  1,
	})
	if err != nil {
		t.Fatalf("Sequence() error: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}

	f := frames[0]
	if f.At(16, 16) != 0 {
		t.Errorf("center pixel index = %d, want 0", f.At(16, 16))
	}
	if f.At(0, 0) != -1 {
		t.Errorf("corner pixel index = %d, want background", f.At(0, 0))
	}
}

func TestSequence_ClipsOffCanvasParticles(t *testing.T) {
	// Centers far outside the box on all sides must neither panic nor
	// touch the canvas.
	frames, err := Sequence([][]Point{{
		{X: 100, Y: 100},
		{X: -100, Y: 0},
		{X: 0, Y: -100},
	}}, 10.0, Options{Resolution: 16, Radius: 1.0, NumColors: 3})
	if err != nil {
		t.Fatalf("Sequence() error: %v", err)
	}
	for p, idx := range frames[0].Index {
		if idx != -1 {
			t.Fatalf("pixel %d = %d, want background for off-canvas particles", p, idx)
		}
	}
}

func TestSequence_EdgeParticleIsClipped(t *testing.T) {
	// A particle sitting on the box edge keeps its on-canvas half.
	frames, err := Sequence([][]Point{{{X: 5.0, Y: 0}}}, 10.0, Options{
		Resolution: 32,
		Radius:     1.0,
		NumColors:  1,
	})
	if err != nil {
		t.Fatalf("Sequence() error: %v", err)
	}

	f := frames[0]
	if f.At(16, 31) != 0 {
		t.Errorf("edge pixel index = %d, want 0", f.At(16, 31))
	}
	for row := 0; row < 32; row++ {
		for col := 0; col < 32; col++ {
			if idx := f.At(row, col); idx != -1 && idx != 0 {
				t.Fatalf("pixel (%d,%d) = %d, want -1 or 0", row, col, idx)
			}
		}
	}
}

func TestSequence_OverlapLaterIndexWins(t *testing.T) {
	frames, err := Sequence([][]Point{{
		{X: 0, Y: 0},
		{X: 0, Y: 0},
	}}, 10.0, Options{Resolution: 32, Radius: 1.0, NumColors: 2})
	if err != nil {
		t.Fatalf("Sequence() error: %v", err)
	}
	if got := frames[0].At(16, 16); got != 1 {
		t.Errorf("overlap pixel index = %d, want 1 (later draw wins)", got)
	}
}

func TestFrame_Bytes(t *testing.T) {
	f := &Frame{Resolution: 2, NumColors: 2, Index: []int{-1, 0, 1, -1}}

	got := f.Bytes()
	want := []byte{0, 127, 255, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bytes()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSequence_InvalidOptions(t *testing.T) {
	pts := [][]Point{{{X: 0, Y: 0}}}
	tests := []struct {
		name string
		box  float64
		opts Options
	}{
		{"zero resolution", 10, Options{Resolution: 0, Radius: 1, NumColors: 1}},
		{"zero radius", 10, Options{Resolution: 8, Radius: 0, NumColors: 1}},
		{"no colors", 10, Options{Resolution: 8, Radius: 1, NumColors: 0}},
		{"zero box", 0, Options{Resolution: 8, Radius: 1, NumColors: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sequence(pts, tt.box, tt.opts); err == nil {
				t.Error("Sequence() succeeded, want error")
			}
		})
	}
}

func TestWriteGIF(t *testing.T) {
	frames, err := Sequence([][]Point{
		{{X: -1, Y: 0}},
		{{X: 1, Y: 0}},
	}, 10.0, Options{Resolution: 16, Radius: 1.0, NumColors: 1})
	if err != nil {
		t.Fatalf("Sequence() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteGIF(&buf, frames, 4); err != nil {
		t.Fatalf("WriteGIF() error: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll() error: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(anim.Image))
	}
	bounds := anim.Image[0].Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 16 {
		t.Errorf("frame bounds = %v, want 16x16", bounds)
	}
}
