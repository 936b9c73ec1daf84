package render

import (
	"image/color"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
)

// paintModules draws every dark data module as a circle. Cells of an
// embedded quiet zone and cells inside a locator square are skipped; the
// background fill and the locator pass cover them.
func paintModules(t Target, g Geometry, m encoder.Matrix, fg color.Color) {
	margin := float64(g.Margin())
	module := float64(g.ModuleSize)
	radius := g.ModuleRadius()
	offset := m.QuietZone()

	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if !m.IsSet(x, y) {
				continue
			}
			ox, oy := x-offset, y-offset
			if ox < 0 || oy < 0 || ox >= m.OriginalSize || oy >= m.OriginalSize {
				continue
			}
			if IsLocatorModule(ox, oy, m.OriginalSize) {
				continue
			}

			cx := margin + (float64(ox)+0.5)*module
			cy := margin + (float64(oy)+0.5)*module
			t.FillCircle(cx, cy, radius, fg)
		}
	}
}
