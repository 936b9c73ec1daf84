// Package encoder produces QR bit-matrices from text.
//
// The renderer treats the encoder as an opaque collaborator: given text it
// returns a square Matrix and its logical and physical sizes. Three real
// encoder libraries are available as backends; they differ in whether a
// quiet zone is embedded in the returned matrix.
package encoder

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendYeqown  = "yeqown"
	BackendSkip2   = "skip2"
	BackendGozxing = "gozxing"
)

// Encoder turns text into a QR bit-matrix.
type Encoder interface {
	Generate(ctx context.Context, text string) (Matrix, error)
}

// Backends lists the available backend names, default first.
func Backends() []string {
	return []string{BackendYeqown, BackendSkip2, BackendGozxing}
}

// New returns the encoder backend with the given name. An empty name selects
// the default yeqown backend. Unknown names fail with ErrInitFailed.
func New(backend string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendYeqown:
		return yeqownEncoder{}, nil
	case BackendSkip2:
		return skip2Encoder{}, nil
	case BackendGozxing:
		return gozxingEncoder{margin: gozxingMargin}, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInitFailed, backend)
	}
}

// precheck is shared by all backends: honour cancellation and reject
// oversized input before touching the library.
func precheck(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return CheckLength(text)
}
