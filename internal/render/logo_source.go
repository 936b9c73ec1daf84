package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/cristianadrielbraun/nextqr/web/assets"
)

// logoRasterSize is the longer side, in pixels, SVG logos are rasterized to
// before grayscale conversion. The compositor downsamples from there.
const logoRasterSize = 256

// DefaultLogo is the embedded center mark.
func DefaultLogo() LogoSource { return SVGLogo(assets.LogoSVG, logoRasterSize) }

// SVGLogo rasterizes an SVG document so that its longer side is size
// pixels, preserving the viewBox aspect ratio.
func SVGLogo(data []byte, size int) LogoSource {
	return func() (image.Image, error) {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse svg logo: %w", err)
		}
		vw, vh := icon.ViewBox.W, icon.ViewBox.H
		if vw <= 0 || vh <= 0 {
			return nil, fmt.Errorf("svg logo has empty viewBox %gx%g", vw, vh)
		}

		w, h := size, size
		if vw > vh {
			h = jsRound(float64(size) * vh / vw)
		} else {
			w = jsRound(float64(size) * vw / vh)
		}
		icon.SetTarget(0, 0, float64(w), float64(h))

		img := image.NewRGBA(image.Rect(0, 0, w, h))
		scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
		icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
		return img, nil
	}
}

// FileLogo reads a PNG, JPEG or SVG logo from disk.
func FileLogo(path string) LogoSource {
	return func() (image.Image, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read logo: %w", err)
		}
		if strings.EqualFold(filepath.Ext(path), ".svg") {
			return SVGLogo(data, logoRasterSize)()
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode logo %s: %w", path, err)
		}
		return img, nil
	}
}
