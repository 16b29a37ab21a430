package schematic

import "testing"

func TestZoomDefaults(t *testing.T) {
	z := NewZoom()
	if z.Factor() != 1.0 {
		t.Errorf("initial factor = %v, want 1.0", z.Factor())
	}
}

func TestZoomStepping(t *testing.T) {
	z := NewZoom()

	if got := z.In(); got != 1.1 {
		t.Errorf("after In: %v, want 1.1", got)
	}
	z.Out()
	if got := z.Out(); got != 0.9 {
		t.Errorf("after In+Out+Out: %v, want 0.9", got)
	}
}

func TestZoomClampUnderRepeatedCalls(t *testing.T) {
	z := NewZoom()
	for i := 0; i < 100; i++ {
		z.In()
	}
	if z.Factor() != MaxZoom {
		t.Errorf("factor = %v, want clamped to %v", z.Factor(), MaxZoom)
	}

	for i := 0; i < 100; i++ {
		z.Out()
	}
	if z.Factor() != MinZoom {
		t.Errorf("factor = %v, want clamped to %v", z.Factor(), MinZoom)
	}
}

func TestZoomNoFloatDrift(t *testing.T) {
	// 0.1 is not representable in binary; stepping must still land exactly
	// on tenths.
	z := NewZoom()
	for i := 0; i < 7; i++ {
		z.In()
	}
	for i := 0; i < 7; i++ {
		z.Out()
	}
	if z.Factor() != 1.0 {
		t.Errorf("factor = %v, want exactly 1.0", z.Factor())
	}
}

func TestZoomSet(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{0.44, 0.5},  // below range clamps up
		{7.2, 3.0},   // above range clamps down
		{1.234, 1.2}, // snaps to step
		{2.55, 2.6},  // rounds to nearest tenth
	}

	for _, tt := range tests {
		z := NewZoom()
		if got := z.Set(tt.in); got != tt.want {
			t.Errorf("Set(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{0.1, MinZoom},
		{5.0, MaxZoom},
		{MinZoom, MinZoom},
		{MaxZoom, MaxZoom},
	}

	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
