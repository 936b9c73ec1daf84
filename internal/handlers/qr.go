package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
	"github.com/cristianadrielbraun/nextqr/internal/export"
	"github.com/cristianadrielbraun/nextqr/internal/render"
)

const jpegQuality = 92

// QRCodeHandler renders a QR code for ?text= without touching the popup
// session.
//
//	size   preview|download  preview waits briefly for the logo, download waits for it
//	format png|jpg
//	style  styled|plain      plain is the square-module reference render
//	fg, bg                   hex colors
func (h *Handler) QRCodeHandler(c *gin.Context) {
	text := c.Query("text")
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text parameter is required"})
		return
	}
	if err := encoder.CheckLength(text); err != nil {
		h.abortWithError(c, statusFor(err), err)
		return
	}

	format := render.ImageFormat(strings.ToLower(c.DefaultQuery("format", "png")))
	if format == "jpeg" {
		format = render.FormatJPEG
	}
	if format != render.FormatPNG && format != render.FormatJPEG {
		format = render.FormatPNG
	}
	size := c.DefaultQuery("size", "preview")
	if size != "download" {
		size = "preview"
	}
	style := c.DefaultQuery("style", "styled")
	fg := parseColorParam(c.Query("fg"), render.ModuleColor)
	bg := parseColorParam(c.Query("bg"), render.BackgroundColor)

	h.log.Debug("QR request", "format", format, "size", size, "style", style, "length", len(text))

	var buf bytes.Buffer
	logo := false
	modules := 0
	if style == "plain" {
		if err := render.Plain(&buf, text, format, fg, bg); err != nil {
			h.abortWithError(c, statusFor(encoder.Classify(err)), encoder.Classify(err))
			return
		}
	} else {
		if h.enc == nil {
			h.abortWithError(c, http.StatusServiceUnavailable, encoder.ErrInitFailed)
			return
		}
		m, err := h.enc.Generate(c.Request.Context(), text)
		if err != nil {
			h.log.Warn("QR generation failed", "error", err)
			kind := encoder.Classify(err)
			h.abortWithError(c, statusFor(kind), kind)
			return
		}
		modules = m.OriginalSize

		r := render.New(h.renderer.Logo(),
			render.WithLogger(h.log),
			render.WithGeometry(h.renderer.Geometry()),
			render.WithColors(fg, bg))
		f, err := h.renderStyled(c.Request.Context(), r, m, size)
		if err != nil {
			h.abortWithError(c, exportStatus(err), err)
			return
		}
		logo = f.HasLogo()
		if format == render.FormatJPEG {
			err = f.EncodeJPEG(&buf, jpegQuality)
		} else {
			err = f.EncodePNG(&buf)
		}
		if err != nil {
			h.abortWithError(c, http.StatusInternalServerError, err)
			return
		}
	}

	// Debug header for quick inspection from devtools.
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;size=%s;style=%s;modules=%d;logo=%t", format, size, style, modules, logo))
	if size == "download" {
		name := strings.TrimSuffix(export.Filename(text), ".png") + "." + string(format)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	}
	contentType := "image/png"
	if format == render.FormatJPEG {
		contentType = "image/jpeg"
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *Handler) renderStyled(ctx context.Context, r *render.Renderer, m encoder.Matrix, size string) (*render.Frame, error) {
	if size == "download" {
		return r.Export(ctx, m)
	}
	f, err := r.Preview(m)
	if err != nil {
		return nil, err
	}
	wctx, cancel := context.WithTimeout(ctx, previewLogoWait)
	defer cancel()
	_ = f.Wait(wctx)
	return f, nil
}

// Helper function to parse hex color parameters
func parseColorParam(param string, defaultColor color.RGBA) color.RGBA {
	if param == "" {
		return defaultColor
	}

	// Handle transparent background
	if strings.ToLower(param) == "transparent" {
		return color.RGBA{0, 0, 0, 0}
	}

	param = strings.TrimPrefix(param, "#")

	// Accept the #rgb shorthand.
	if len(param) == 3 {
		param = string([]byte{param[0], param[0], param[1], param[1], param[2], param[2]})
	}
	if len(param) != 6 {
		return defaultColor
	}

	r, err1 := strconv.ParseUint(param[0:2], 16, 8)
	g, err2 := strconv.ParseUint(param[2:4], 16, 8)
	b, err3 := strconv.ParseUint(param[4:6], 16, 8)

	if err1 != nil || err2 != nil || err3 != nil {
		return defaultColor
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}
