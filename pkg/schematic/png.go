package schematic

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/wiretrace/wiretrace/pkg/errors"
)

// Fixed raster canvas for PNG export.
const (
	CanvasWidth  = 800
	CanvasHeight = 600
)

// RasterizePNG decodes the given SVG document and rasterizes it onto the
// fixed 800×600 canvas over a solid white background. The vector content is
// fitted to the canvas, preserving the scene's aspect ratio.
//
// A vector form that cannot be decoded is a reportable EXPORT_FAILED error,
// never silently swallowed.
func RasterizePNG(svg []byte) ([]byte, error) {
	return RasterizePNGSize(svg, CanvasWidth, CanvasHeight)
}

// RasterizePNGSize is RasterizePNG with an explicit canvas size.
func RasterizePNGSize(svg []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeExportFailed, "invalid canvas size %dx%d", width, height)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "decode vector form")
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}
