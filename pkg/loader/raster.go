package loader

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"terrain_router/pkg/terrain"
)

var (
	// ErrUnknownColor is returned for a pixel that matches no terrain class.
	ErrUnknownColor = errors.New("unknown terrain color")
	// ErrRasterTooSmall is returned when the image does not cover the grid.
	ErrRasterTooSmall = errors.New("terrain image smaller than grid")
)

// ReadTerrain decodes the image at path and classifies its top-left
// rows×cols pixels.
func ReadTerrain(path string, rows, cols int) ([]terrain.Kind, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ClassifyImage(img, rows, cols)
}

// ClassifyImage maps every pixel of the rows×cols window at the image origin
// to its terrain kind, row-major. A pixel matches a class on all four
// components or, failing that, on RGB alone.
func ClassifyImage(img image.Image, rows, cols int) ([]terrain.Kind, error) {
	b := img.Bounds()
	if b.Dx() < cols || b.Dy() < rows {
		return nil, fmt.Errorf("%w: %dx%d image, need %dx%d", ErrRasterTooSmall, b.Dx(), b.Dy(), cols, rows)
	}

	kinds := make([]terrain.Kind, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			k, ok := classify(px)
			if !ok {
				return nil, fmt.Errorf("%w: pixel x=%d y=%d is rgba(%d,%d,%d,%d)",
					ErrUnknownColor, x, y, px.R, px.G, px.B, px.A)
			}
			kinds[y*cols+x] = k
		}
	}
	return kinds, nil
}

func classify(px color.NRGBA) (terrain.Kind, bool) {
	if k, ok := terrain.Classify(px); ok {
		return k, true
	}
	return terrain.ClassifyRGB(px.R, px.G, px.B)
}
