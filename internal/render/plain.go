package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// ImageFormat selects the encoding of a plain render.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpg"
)

// nopCloser lets the standard writer stream into a plain io.Writer.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Plain writes text as an unstyled square-module QR code with the same
// module size and quiet zone as the styled renders, for side by side
// comparison.
func Plain(w io.Writer, text string, format ImageFormat, fg, bg color.Color) error {
	qrc, err := qrcode.NewWith(text, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium))
	if err != nil {
		return fmt.Errorf("plain encode: %w", err)
	}

	enc := standard.PNG_FORMAT
	if format == FormatJPEG {
		enc = standard.JPEG_FORMAT
	}
	writer := standard.NewWithWriter(nopCloser{w},
		standard.WithQRWidth(ModulePixelSize),
		standard.WithBorderWidth(QuietZonePixels),
		standard.WithBgColor(bg),
		standard.WithFgColor(fg),
		standard.WithBuiltinImageEncoder(enc),
	)
	if err := qrc.Save(writer); err != nil {
		return fmt.Errorf("plain render: %w", err)
	}
	return nil
}
