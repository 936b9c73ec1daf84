package render

import (
	"image/color"
	"math"
)

// Visual constants shared by every render size.
const (
	ModulePixelSize    = 10
	LocatorSizeModules = 7
	QuietZoneModules   = 4
	QuietZonePixels    = ModulePixelSize * QuietZoneModules

	// PreviewDisplaySize is the on-screen footprint of the preview in CSS
	// pixels. The buffer itself is rendered at export resolution.
	PreviewDisplaySize = 240

	// The center logo box is laid out in tiles of 4px at the reference
	// module size.
	CenterTargetWidthTiles  = 20
	CenterTargetHeightTiles = 22

	referenceModulePixels = 10
	centerTilePixels      = 4
	centerBorderPixels    = 2
	locatorRadiusPixels   = 10
)

var (
	ModuleColor     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	BackgroundColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Geometry derives every pixel measure of a render from the module size.
type Geometry struct {
	ModuleSize int
}

// DefaultGeometry returns the geometry used by preview and export renders.
func DefaultGeometry() Geometry { return Geometry{ModuleSize: ModulePixelSize} }

func (g Geometry) scale() float64 {
	return float64(g.ModuleSize) / referenceModulePixels
}

// Margin is the quiet-zone width in pixels on each side.
func (g Geometry) Margin() int { return g.ModuleSize * QuietZoneModules }

// CanvasSize is the side length of a square canvas holding a symbol of
// originalSize modules plus the quiet zone.
func (g Geometry) CanvasSize(originalSize int) int {
	return originalSize*g.ModuleSize + 2*g.Margin()
}

// ModuleRadius is the radius of a data-module circle.
func (g Geometry) ModuleRadius() float64 { return float64(g.ModuleSize)/2 - 1 }

// LocatorRadius is the corner radius shared by all three locator squares.
func (g Geometry) LocatorRadius() float64 { return locatorRadiusPixels * g.scale() }

// CenterBox returns the logo target box and its border, in pixels.
func (g Geometry) CenterBox() (width, height, border int) {
	tile := jsRound(centerTilePixels * g.scale())
	return tile * CenterTargetWidthTiles, tile * CenterTargetHeightTiles, jsRound(centerBorderPixels * g.scale())
}

// jsRound rounds half up, matching the browser's Math.round.
func jsRound(v float64) int { return int(math.Floor(v + 0.5)) }
