package svg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterize converts SVG markup to a PNG preview. The longer side of the
// output is targetSize pixels; aspect ratio follows the SVG viewBox.
func Rasterize(svgBytes []byte, targetSize int) ([]byte, error) {
	if targetSize <= 0 {
		targetSize = 400
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgBytes), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	svgWidth := icon.ViewBox.W
	svgHeight := icon.ViewBox.H
	if svgWidth <= 0 || svgHeight <= 0 {
		// The parser is lenient: input with no svg element at all yields an
		// empty icon with a zero viewBox. Reject that instead of emitting a
		// blank image.
		if len(icon.SVGPaths) == 0 {
			return nil, fmt.Errorf("input contains no drawable SVG content")
		}
		svgWidth, svgHeight = 100, 100
	}
	aspectRatio := svgWidth / svgHeight

	var targetWidth, targetHeight int
	if aspectRatio >= 1.0 {
		targetWidth = targetSize
		targetHeight = int(float64(targetSize) / aspectRatio)
	} else {
		targetHeight = targetSize
		targetWidth = int(float64(targetSize) * aspectRatio)
	}
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	icon.SetTarget(0, 0, float64(targetWidth), float64(targetHeight))

	rgba := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	scanner := rasterx.NewScannerGV(targetWidth, targetHeight, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(targetWidth, targetHeight, scanner)
	icon.Draw(raster, 1.0)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return pngBuf.Bytes(), nil
}
