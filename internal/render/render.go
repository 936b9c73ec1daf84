// Package render draws QR bit-matrices in the style of the browser's
// native share dialog: circular data modules, rounded locators and a
// grayscale logo in a grid-aligned cutout.
//
// A render runs four passes in order: background fill, data modules,
// locators, center logo. Preview and export renders share the pipeline and
// differ only in how they treat a logo that is still loading.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"sync"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
)

// Renderer turns matrices into frames. One Renderer, and its logo cache,
// lives as long as the popup view.
type Renderer struct {
	geom   Geometry
	logo   *LogoCache
	log    *slog.Logger
	fg, bg color.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for compositor warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = orDiscard(l) }
}

// WithColors overrides the module and background colors.
func WithColors(fg, bg color.Color) Option {
	return func(r *Renderer) { r.fg, r.bg = fg, bg }
}

// WithGeometry overrides the default module size.
func WithGeometry(g Geometry) Option {
	return func(r *Renderer) { r.geom = g }
}

// New returns a Renderer compositing logos from cache. A nil cache renders
// without a center logo.
func New(cache *LogoCache, opts ...Option) *Renderer {
	r := &Renderer{
		geom: DefaultGeometry(),
		logo: cache,
		log:  orDiscard(nil),
		fg:   ModuleColor,
		bg:   BackgroundColor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Geometry returns the geometry frames are rendered with.
func (r *Renderer) Geometry() Geometry { return r.geom }

// Logo returns the renderer's logo cache.
func (r *Renderer) Logo() *LogoCache { return r.logo }

// RenderTo draws m onto t synchronously. The center logo is included only
// if it is already cached; RenderTo never waits for it. It reports whether
// the logo landed.
func (r *Renderer) RenderTo(t Target, m encoder.Matrix) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, fmt.Errorf("render: %w", err)
	}
	r.drawBase(t, m)
	return r.drawLogo(t), nil
}

// Preview renders m for on-screen display. The buffer has export
// resolution; DisplaySize is the fixed on-screen footprint. If the logo is
// not ready yet, one deferred logo pass is scheduled on the frame and
// Frame.Done closes when it has run.
func (r *Renderer) Preview(m encoder.Matrix) (*Frame, error) {
	f, err := r.newFrame(m, PreviewDisplaySize)
	if err != nil {
		return nil, err
	}
	r.drawBase(f.canvas, m)
	if r.logo != nil {
		if _, ready := r.logo.Image(); ready {
			// The logo either landed or the canvas cannot hold it; a
			// second pass would change nothing.
			f.logo = r.drawLogo(f.canvas)
			close(f.done)
			return f, nil
		}
	}
	r.scheduleLogo(f)
	return f, nil
}

// Export renders m at exact export size for clipboard or download. It waits
// for the logo to resolve first; a failed logo only means the frame has
// none.
func (r *Renderer) Export(ctx context.Context, m encoder.Matrix) (*Frame, error) {
	if r.logo != nil {
		if err := r.logo.Wait(ctx); err != nil && ctx.Err() != nil {
			return nil, err
		}
	}
	f, err := r.newFrame(m, r.geom.CanvasSize(m.OriginalSize))
	if err != nil {
		return nil, err
	}
	r.drawBase(f.canvas, m)
	f.logo = r.drawLogo(f.canvas)
	close(f.done)
	return f, nil
}

func (r *Renderer) newFrame(m encoder.Matrix, display int) (*Frame, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	size := r.geom.CanvasSize(m.OriginalSize)
	return &Frame{
		canvas:      NewCanvas(size, size),
		displaySize: display,
		modules:     m.OriginalSize,
		done:        make(chan struct{}),
	}, nil
}

// drawBase clears t and runs the module and locator passes with image
// smoothing off.
func (r *Renderer) drawBase(t Target, m encoder.Matrix) {
	b := t.Bounds()
	t.FillRect(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()), r.bg)
	t.SetImageSmoothing(false)

	paintModules(t, r.geom, m, r.fg)
	paintLocators(t, r.geom, m.OriginalSize, r.fg, r.bg)
}

func (r *Renderer) drawLogo(t Target) bool {
	if r.logo == nil {
		return false
	}
	img, ok := r.logo.Image()
	if !ok {
		return false
	}
	return paintCenter(t, r.geom, img, r.bg, r.log)
}

// scheduleLogo runs the single catch-up logo pass for f once the cache
// resolves.
func (r *Renderer) scheduleLogo(f *Frame) {
	if r.logo == nil {
		close(f.done)
		return
	}
	ready := r.logo.Ensure()
	go func() {
		defer close(f.done)
		<-ready
		f.mu.Lock()
		defer f.mu.Unlock()
		f.logo = r.drawLogo(f.canvas)
	}()
}

// Frame is one rendered symbol.
type Frame struct {
	mu          sync.Mutex
	canvas      *Canvas
	displaySize int
	modules     int
	logo        bool
	done        chan struct{}
}

// Done is closed once every pass, including a deferred logo pass, has run.
func (f *Frame) Done() <-chan struct{} { return f.done }

// Wait blocks until Done or ctx ends.
func (f *Frame) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Size is the buffer side length in pixels.
func (f *Frame) Size() int { return f.canvas.Bounds().Dx() }

// DisplaySize is the intended on-screen side length in CSS pixels.
func (f *Frame) DisplaySize() int { return f.displaySize }

// Modules is the logical symbol size.
func (f *Frame) Modules() int { return f.modules }

// HasLogo reports whether the center logo has been composited.
func (f *Frame) HasLogo() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logo
}

// Snapshot returns a copy of the current pixels.
func (f *Frame) Snapshot() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.canvas.Image()
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// EncodePNG writes the current pixels as PNG. Call Wait first for a
// complete image.
func (f *Frame) EncodePNG(w io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canvas.EncodePNG(w)
}

// EncodeJPEG writes the current pixels as JPEG over the background color.
func (f *Frame) EncodeJPEG(w io.Writer, quality int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canvas.EncodeJPEG(w, quality)
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
