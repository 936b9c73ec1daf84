package encoder

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
)

// MaxInputLength is the longest input accepted, counted in UTF-16 code units
// so that limits line up with what a browser text field reports.
const MaxInputLength = 2000

var (
	ErrInitFailed       = errors.New("encoder: initialization failed")
	ErrInputTooLong     = errors.New("encoder: input too long")
	ErrGenerationFailed = errors.New("encoder: generation failed")
)

// InputLength returns the length of s in UTF-16 code units.
func InputLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// CheckLength returns ErrInputTooLong when text exceeds MaxInputLength.
func CheckLength(text string) error {
	if n := InputLength(text); n > MaxInputLength {
		return fmt.Errorf("%w: %d > %d", ErrInputTooLong, n, MaxInputLength)
	}
	return nil
}

// Classify maps any error returned by an Encoder onto one of the sentinel
// errors. Backend failures whose message mentions "too long" are reported
// as ErrInputTooLong.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInputTooLong):
		return ErrInputTooLong
	case errors.Is(err, ErrInitFailed):
		return ErrInitFailed
	case strings.Contains(strings.ToLower(err.Error()), "too long"):
		return ErrInputTooLong
	default:
		return ErrGenerationFailed
	}
}
