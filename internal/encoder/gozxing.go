package encoder

import (
	"context"
	"fmt"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

// gozxingMargin is the quiet zone requested through the margin hint.
const gozxingMargin = 2

type gozxingEncoder struct {
	margin int
}

func (e gozxingEncoder) Generate(ctx context.Context, text string) (Matrix, error) {
	if err := precheck(ctx, text); err != nil {
		return Matrix{}, err
	}

	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_M,
		gozxing.EncodeHintType_MARGIN:           e.margin,
		gozxing.EncodeHintType_CHARACTER_SET:    "UTF-8",
	}
	// Requesting 1x1 keeps the writer at one pixel per module.
	bm, err := zxqrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 1, 1, hints)
	if err != nil {
		return Matrix{}, fmt.Errorf("gozxing encode: %w", err)
	}
	size := bm.GetWidth()
	if size != bm.GetHeight() {
		return Matrix{}, fmt.Errorf("%w: non-square matrix %dx%d", ErrGenerationFailed, size, bm.GetHeight())
	}
	m := fromGrid(size, e.margin, bm.Get)
	if err := m.Validate(); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return m, nil
}
