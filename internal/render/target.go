package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Target is a 2-D drawing surface with a fixed pixel buffer.
type Target interface {
	Bounds() image.Rectangle
	// SetImageSmoothing selects the interpolation used by DrawImage.
	SetImageSmoothing(on bool)
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillRoundedRect(x, y, w, h, r float64, c color.Color)
	// DrawImage scales src into dst, compositing over existing pixels.
	DrawImage(src image.Image, dst image.Rectangle)
}

// Canvas is the Target used for every real render. Shapes go through a
// fogleman/gg context drawing straight into the RGBA buffer.
type Canvas struct {
	img    *image.RGBA
	dc     *gg.Context
	smooth bool
	// mask is a scratch context for shapes filled with a translucent color.
	mask *gg.Context
}

// NewCanvas returns a transparent canvas of w x h pixels.
func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Canvas{img: img, dc: gg.NewContextForRGBA(img), smooth: true}
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

func (c *Canvas) SetImageSmoothing(on bool) { c.smooth = on }

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.fill(col, x, y, w, h, func(dc *gg.Context) { dc.DrawRectangle(x, y, w, h) })
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(cx, cy, r)
	c.dc.Fill()
}

func (c *Canvas) FillRoundedRect(x, y, w, h, r float64, col color.Color) {
	c.fill(col, x, y, w, h, func(dc *gg.Context) { dc.DrawRoundedRectangle(x, y, w, h, r) })
}

// fill paints the shape traced by path inside the box (x, y, w, h). Opaque
// colors go straight through gg. Translucent colors replace the covered
// pixels instead of blending over them, so a transparent background still
// erases what earlier passes drew.
func (c *Canvas) fill(col color.Color, x, y, w, h float64, path func(dc *gg.Context)) {
	sr, sg, sb, sa := col.RGBA()
	if sa == 0xffff {
		c.dc.SetColor(col)
		path(c.dc)
		c.dc.Fill()
		return
	}

	b := c.img.Bounds()
	if c.mask == nil {
		c.mask = gg.NewContext(b.Dx(), b.Dy())
	}
	c.mask.SetRGBA(0, 0, 0, 0)
	c.mask.Clear()
	c.mask.SetRGBA(1, 1, 1, 1)
	path(c.mask)
	c.mask.Fill()
	cover := c.mask.AsMask()

	box := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h))).Intersect(b)
	for py := box.Min.Y; py < box.Max.Y; py++ {
		for px := box.Min.X; px < box.Max.X; px++ {
			m := uint64(cover.AlphaAt(px-b.Min.X, py-b.Min.Y).A) * 0x101
			if m == 0 {
				continue
			}
			i := c.img.PixOffset(px, py)
			p := c.img.Pix[i : i+4 : i+4]
			p[0] = replace(p[0], sr, m)
			p[1] = replace(p[1], sg, m)
			p[2] = replace(p[2], sb, m)
			p[3] = replace(p[3], sa, m)
		}
	}
}

// replace mixes premultiplied 16-bit source s into 8-bit dst d by coverage m.
func replace(d uint8, s uint32, m uint64) uint8 {
	v := (uint64(s)*m + uint64(d)*0x101*(0xffff-m)) / 0xffff
	return uint8(v >> 8)
}

func (c *Canvas) DrawImage(src image.Image, dst image.Rectangle) {
	var s xdraw.Scaler = xdraw.NearestNeighbor
	if c.smooth {
		s = xdraw.CatmullRom
	}
	s.Scale(c.img, dst, src, src.Bounds(), xdraw.Over, nil)
}

// Image returns the live pixel buffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

// EncodePNG writes the buffer as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// EncodeJPEG flattens the buffer onto the background color and writes it as
// JPEG.
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	b := c.img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: BackgroundColor}, image.Point{}, draw.Src)
	draw.Draw(out, b, c.img, b.Min, draw.Over)
	return jpeg.Encode(w, out, &jpeg.Options{Quality: quality})
}
