package schematic

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/wiretrace/wiretrace/pkg/errors"
)

func TestRasterizePNG(t *testing.T) {
	c := mustParse(t, "R1: resistor 330 (250,100)\nLED1: led red\nR1 -> LED1")
	scene, _ := Build(c, Options{})

	data, err := RasterizePNG(RenderSVG(scene))
	if err != nil {
		t.Fatalf("RasterizePNG error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != CanvasWidth || bounds.Dy() != CanvasHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), CanvasWidth, CanvasHeight)
	}

	// Solid white background beneath the drawing: sample a corner.
	r, g, b, _ := img.At(bounds.Max.X-1, bounds.Max.Y-1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("corner pixel = (%v,%v,%v), want white", r, g, b)
	}
}

func TestRasterizePNGRoundTripAllSceneOutputs(t *testing.T) {
	// Exporting then rasterizing must not error for any scene produced from
	// valid parser output, including fallbacks and skipped wires.
	inputs := []string{
		"R1: resistor",
		"X1: mystery\nR1: resistor\nR1 -> NOWHERE",
		"B1: arduino_uno (100,100)\nS1: ultrasonic (400,100)\nB1 -> S1",
	}

	for _, input := range inputs {
		c := mustParse(t, input)
		scene, _ := Build(c, Options{})
		if _, err := RasterizePNG(RenderSVG(scene)); err != nil {
			t.Errorf("round-trip failed for %q: %v", input, err)
		}
	}
}

func TestRasterizePNGMalformedVector(t *testing.T) {
	_, err := RasterizePNG([]byte("<svg><unclosed"))
	if err == nil {
		t.Fatal("malformed markup should be a reportable error")
	}
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error code = %v, want EXPORT_FAILED", errors.GetCode(err))
	}
}

func TestRasterizePNGInvalidCanvas(t *testing.T) {
	_, err := RasterizePNGSize([]byte("<svg/>"), 0, 600)
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error code = %v, want EXPORT_FAILED", errors.GetCode(err))
	}
}
