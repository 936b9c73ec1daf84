package encoder

import (
	"context"
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
)

// yeqownEncoder is the default backend. It returns the bare symbol without a
// quiet zone; the renderer adds the margin itself.
type yeqownEncoder struct{}

func (yeqownEncoder) Generate(ctx context.Context, text string) (Matrix, error) {
	if err := precheck(ctx, text); err != nil {
		return Matrix{}, err
	}

	qrc, err := qrcode.NewWith(text, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium))
	if err != nil {
		return Matrix{}, fmt.Errorf("yeqown encode: %w", err)
	}

	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return Matrix{}, fmt.Errorf("yeqown matrix: %w", err)
	}
	if err := w.m.Validate(); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return w.m, nil
}

// matrixWriter implements qrcode.Writer and captures the symbol instead of
// drawing it.
type matrixWriter struct {
	m Matrix
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	size := mat.Width()
	if size != mat.Height() {
		return fmt.Errorf("non-square matrix %dx%d", size, mat.Height())
	}
	data := make([]byte, size*size)
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if v.IsSet() {
			data[y*size+x] = 1
		}
	})
	w.m = Matrix{Data: data, Size: size, OriginalSize: size}
	return nil
}

func (w *matrixWriter) Close() error { return nil }
