package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
)

// op is one recorded drawing call.
type op struct {
	kind       string
	x, y, w, h float64
	r          float64
	c          color.Color
}

// recorder is a Target that remembers calls instead of drawing.
type recorder struct {
	bounds image.Rectangle
	smooth []bool
	ops    []op
}

func newRecorder(size int) *recorder {
	return &recorder{bounds: image.Rect(0, 0, size, size)}
}

func (r *recorder) Bounds() image.Rectangle   { return r.bounds }
func (r *recorder) SetImageSmoothing(on bool) { r.smooth = append(r.smooth, on) }

func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, w: w, h: h, c: c})
}

func (r *recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "circle", x: cx, y: cy, r: rad, c: c})
}

func (r *recorder) FillRoundedRect(x, y, w, h, rad float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "round", x: x, y: y, w: w, h: h, r: rad, c: c})
}

func (r *recorder) DrawImage(_ image.Image, dst image.Rectangle) {
	r.ops = append(r.ops, op{
		kind: "image",
		x:    float64(dst.Min.X), y: float64(dst.Min.Y),
		w: float64(dst.Dx()), h: float64(dst.Dy()),
	})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

// filledMatrix returns a matrix with every logical module dark and a quiet
// zone of qz modules around it.
func filledMatrix(logical, qz int) encoder.Matrix {
	size := logical + 2*qz
	data := make([]byte, size*size)
	for y := qz; y < qz+logical; y++ {
		for x := qz; x < qz+logical; x++ {
			data[y*size+x] = 1
		}
	}
	return encoder.Matrix{Data: data, Size: size, OriginalSize: logical}
}

func generate(t *testing.T, backend, text string) encoder.Matrix {
	t.Helper()
	enc, err := encoder.New(backend)
	if err != nil {
		t.Fatal(err)
	}
	m, err := enc.Generate(context.Background(), text)
	if err != nil {
		t.Fatalf("Generate(%q) error = %v", text, err)
	}
	return m
}

func solidLogo(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// readyCache returns a cache that has finished loading img.
func readyCache(t *testing.T, img image.Image) *LogoCache {
	t.Helper()
	c := NewLogoCache(func() (image.Image, error) { return img, nil }, nil)
	if err := c.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c
}
