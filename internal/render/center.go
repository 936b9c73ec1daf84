package render

import (
	"image"
	"image/color"
	"log/slog"
	"math"
)

// centerLayout positions the logo on a canvas. The cutout is the
// background rectangle cleared under the logo; its edges sit on module
// boundaries.
type centerLayout struct {
	cutout        image.Rectangle
	destX, destY  float64
	width, height float64
}

// layoutCenter computes the center logo layout for a canvas of w x h
// pixels. It returns false when the box plus border would not fit in half
// the canvas.
func layoutCenter(g Geometry, w, h int) (centerLayout, bool) {
	bw, bh, border := g.CenterBox()
	boxW, boxH, b := float64(bw), float64(bh), float64(border)
	if float64(w)/2 < boxW+b || float64(h)/2 < boxH+b {
		return centerLayout{}, false
	}

	m := float64(g.ModuleSize)
	destX := (float64(w) - boxW) / 2
	destY := (float64(h) - boxH) / 2

	left := math.Floor((destX-b)/m) * m
	top := math.Floor((destY-b)/m) * m
	right := math.Floor((destX+boxW+b+m-1)/m) * m
	bottom := math.Floor((destY+boxH+b+m-1)/m) * m

	// Recenter the logo on the snapped cutout.
	destX += float64(jsRound((left+right)/2 - (destX + boxW/2)))
	destY += float64(jsRound((top+bottom)/2 - (destY + boxH/2)))

	return centerLayout{
		cutout: image.Rect(int(left), int(top), int(right), int(bottom)),
		destX:  destX,
		destY:  destY,
		width:  boxW,
		height: boxH,
	}, true
}

// paintCenter clears the grid-aligned cutout and draws logo inside it.
func paintCenter(t Target, g Geometry, logo image.Image, bg color.Color, log *slog.Logger) bool {
	b := t.Bounds()
	l, ok := layoutCenter(g, b.Dx(), b.Dy())
	if !ok {
		log.Warn("center image too large for canvas bounds", "width", b.Dx(), "height", b.Dy())
		return false
	}

	c := l.cutout
	t.FillRect(float64(c.Min.X), float64(c.Min.Y), float64(c.Dx()), float64(c.Dy()), bg)
	drawCenterIcon(t, logo, l)
	return true
}

// drawCenterIcon fits logo into the layout box, preserving aspect ratio.
func drawCenterIcon(t Target, logo image.Image, l centerLayout) {
	iw, ih := logo.Bounds().Dx(), logo.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}

	scale := math.Min(l.width/float64(iw), l.height/float64(ih))
	w := jsRound(float64(iw) * scale)
	h := jsRound(float64(ih) * scale)
	x := jsRound(l.destX + (l.width-float64(w))/2)
	y := jsRound(l.destY + (l.height-float64(h))/2)

	t.SetImageSmoothing(true)
	t.DrawImage(logo, image.Rect(x, y, x+w, y+h))
}
