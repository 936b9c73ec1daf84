package popup

import (
	"errors"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
)

// ErrorType classifies a failed generation for the view.
type ErrorType string

const (
	ErrorNone             ErrorType = ""
	ErrorInitFailed       ErrorType = "INIT_FAILED"
	ErrorInputTooLong     ErrorType = "INPUT_TOO_LONG"
	ErrorGenerationFailed ErrorType = "GENERATION_FAILED"
)

func errorTypeOf(err error) ErrorType {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, encoder.ErrInputTooLong):
		return ErrorInputTooLong
	case errors.Is(err, encoder.ErrInitFailed):
		return ErrorInitFailed
	default:
		return ErrorGenerationFailed
	}
}

// State is a snapshot of the popup view. Pending is set while a debounced
// generation is waiting to start.
type State struct {
	Input     string         `json:"input"`
	Pending   bool           `json:"pending"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
	ErrorType ErrorType      `json:"errorType,omitempty"`
	Matrix    encoder.Matrix `json:"-"`
	// Revision increases every time a generation result lands.
	Revision uint64 `json:"revision"`
}

// HasData reports whether the state holds a renderable matrix.
func (s State) HasData() bool {
	return s.Matrix.Size > 0 && len(s.Matrix.Data) > 0
}

// ShowInputLengthError reports whether the inline length error under the
// input field is visible. Other errors replace the preview instead.
func (s State) ShowInputLengthError() bool {
	return s.Error != "" && s.ErrorType == ErrorInputTooLong
}

// ActionsDisabled reports whether copy and download are unavailable.
func (s State) ActionsDisabled() bool {
	return !s.HasData() || s.Loading
}

// Modules is the logical symbol size, or 0 without data.
func (s State) Modules() int {
	if !s.HasData() {
		return 0
	}
	return s.Matrix.OriginalSize
}
