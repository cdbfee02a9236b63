// Package render turns a planned route into an image overlay, a CSV step
// table or GeoJSON.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"terrain_router/pkg/grid"
)

// PathColor is the overlay color of route cells.
var PathColor = color.NRGBA{200, 100, 230, 255}

// Options controls the PNG overlay.
type Options struct {
	// Caption, when set, is drawn in the bottom-left corner of the image.
	Caption string
}

// Readout formats a total route length the way the command line reports it.
// Whole numbers keep one decimal place, so an empty route reads 0.0.
func Readout(meters float64) string {
	s := strconv.FormatFloat(meters, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return "Total Distance:  " + s + "  m"
}

// Overlay returns a copy of base with every route cell painted in PathColor.
func Overlay(base image.Image, cells []grid.Cell, opts Options) image.Image {
	dc := gg.NewContextForImage(base)
	dc.SetColor(PathColor)
	for _, c := range cells {
		dc.SetPixel(c.Col, c.Row)
	}
	if opts.Caption != "" {
		dc.SetColor(color.Black)
		dc.DrawString(opts.Caption, 4, float64(dc.Height()-4))
	}
	return dc.Image()
}

// DrawRoute paints the route onto the terrain image at terrainPath and saves
// the result as a PNG at outPath.
func DrawRoute(terrainPath, outPath string, cells []grid.Cell, opts Options) error {
	base, err := gg.LoadImage(terrainPath)
	if err != nil {
		return fmt.Errorf("load terrain image: %w", err)
	}
	if err := gg.SavePNG(outPath, Overlay(base, cells, opts)); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	return nil
}
