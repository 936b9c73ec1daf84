package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"
)

// LogoState is the lifecycle of a LogoCache. Transitions are monotonic:
// unloaded -> loading -> ready or failed.
type LogoState int32

const (
	LogoUnloaded LogoState = iota
	LogoLoading
	LogoReady
	LogoFailed
)

func (s LogoState) String() string {
	switch s {
	case LogoUnloaded:
		return "unloaded"
	case LogoLoading:
		return "loading"
	case LogoReady:
		return "ready"
	case LogoFailed:
		return "failed"
	}
	return "unknown"
}

var errEmptyLogo = errors.New("logo image has no pixels")

// LogoSource decodes the image shown at the center of the symbol.
type LogoSource func() (image.Image, error)

// LogoCache holds the grayscale center logo for the lifetime of a popup
// view. The source is decoded at most once, in the background; every caller
// of Ensure shares the same in-flight load.
type LogoCache struct {
	source LogoSource
	log    *slog.Logger

	once sync.Once
	done chan struct{}

	mu    sync.RWMutex
	state LogoState
	gray  *image.NRGBA
	err   error
}

// NewLogoCache returns an unloaded cache reading from source.
func NewLogoCache(source LogoSource, log *slog.Logger) *LogoCache {
	return &LogoCache{
		source: source,
		log:    orDiscard(log),
		done:   make(chan struct{}),
	}
}

// Ensure starts loading the logo if nobody has yet and returns a channel
// that is closed once the cache is ready or failed.
func (c *LogoCache) Ensure() <-chan struct{} {
	c.once.Do(func() {
		c.mu.Lock()
		c.state = LogoLoading
		c.mu.Unlock()
		go c.load()
	})
	return c.done
}

func (c *LogoCache) load() {
	defer close(c.done)

	img, err := c.source()
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = errEmptyLogo
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = LogoFailed
		c.err = err
		c.log.Warn("failed to preload center logo", "error", err)
		return
	}
	c.gray = Grayscale(img)
	c.state = LogoReady
	c.log.Debug("center logo ready", "width", c.gray.Rect.Dx(), "height", c.gray.Rect.Dy())
}

// Wait starts loading if needed and blocks until the logo resolves or ctx is
// done. It returns the load error, if any.
func (c *LogoCache) Wait(ctx context.Context) error {
	select {
	case <-c.Ensure():
	case <-ctx.Done():
		return ctx.Err()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Image returns the grayscale logo once it is ready.
func (c *LogoCache) Image() (*image.NRGBA, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gray, c.state == LogoReady
}

// State returns the current lifecycle state.
func (c *LogoCache) State() LogoState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Grayscale converts img to luminance gray, keeping its alpha channel.
// Luma uses the sRGB weights on straight (non-premultiplied) components.
func Grayscale(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			l := uint8(math.Floor(0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B) + 0.5))
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{R: l, G: l, B: l, A: c.A})
		}
	}
	return out
}
