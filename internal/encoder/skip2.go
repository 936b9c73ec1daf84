package encoder

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// skip2QuietZone is the border go-qrcode adds around every bitmap.
const skip2QuietZone = 4

// skip2Encoder embeds a 4-module quiet zone in the returned matrix.
type skip2Encoder struct{}

func (skip2Encoder) Generate(ctx context.Context, text string) (Matrix, error) {
	if err := precheck(ctx, text); err != nil {
		return Matrix{}, err
	}

	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return Matrix{}, fmt.Errorf("skip2 encode: %w", err)
	}
	bits := q.Bitmap()
	size := len(bits)
	m := fromGrid(size, skip2QuietZone, func(x, y int) bool { return bits[y][x] })
	if err := m.Validate(); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return m, nil
}
