package render

import "image/color"

// IsLocatorModule reports whether logical module (x, y) of a symbol with
// size modules per side lies inside one of the three 7x7 locator squares.
// QR symbols have no bottom-right locator.
func IsLocatorModule(x, y, size int) bool {
	switch {
	case x < LocatorSizeModules && y < LocatorSizeModules:
		return true
	case x >= size-LocatorSizeModules && y < LocatorSizeModules:
		return true
	case x < LocatorSizeModules && y >= size-LocatorSizeModules:
		return true
	}
	return false
}

// paintLocators draws the three rounded finder patterns over the module
// pass: a 7x7 foreground square, a 5x5 background square and a 3x3
// foreground square, each inset by one module.
func paintLocators(t Target, g Geometry, size int, fg, bg color.Color) {
	margin := float64(g.Margin())
	module := float64(g.ModuleSize)
	radius := g.LocatorRadius()

	drawOne := func(leftModules, topModules int) {
		left := float64(leftModules) * module
		top := float64(topModules) * module
		dim := module * LocatorSizeModules

		for _, c := range []color.Color{fg, bg, fg} {
			t.FillRoundedRect(margin+left, margin+top, dim, dim, radius, c)
			left += module
			top += module
			dim -= 2 * module
		}
	}

	drawOne(0, 0)
	drawOne(size-LocatorSizeModules, 0)
	drawOne(0, size-LocatorSizeModules)
}
