package encoder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewBackends(t *testing.T) {
	for _, name := range append(Backends(), "", "SKIP2") {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("wasm"); !errors.Is(err, ErrInitFailed) {
		t.Errorf("New(wasm) error = %v, want ErrInitFailed", err)
	}
}

func TestGenerateInvariants(t *testing.T) {
	tests := []struct {
		backend   string
		quietZone int
	}{
		{BackendYeqown, 0},
		{BackendSkip2, skip2QuietZone},
		{BackendGozxing, gozxingMargin},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			enc, err := New(tt.backend)
			if err != nil {
				t.Fatal(err)
			}
			m, err := enc.Generate(context.Background(), "https://example.com")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if err := m.Validate(); err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if got := m.QuietZone(); got != tt.quietZone {
				t.Errorf("QuietZone() = %d, want %d", got, tt.quietZone)
			}
			if (m.OriginalSize-17)%4 != 0 {
				t.Errorf("OriginalSize = %d, not a QR version size", m.OriginalSize)
			}
			// Top-left finder corner is always dark.
			q := m.QuietZone()
			if !m.IsSet(q, q) {
				t.Error("finder corner module not set")
			}
			if q > 0 && m.IsSet(0, 0) {
				t.Error("quiet zone module set")
			}
		})
	}
}

func TestBackendsAgreeOnLogicalSize(t *testing.T) {
	sizes := map[string]int{}
	for _, name := range Backends() {
		enc, _ := New(name)
		m, err := enc.Generate(context.Background(), "https://example.com/some/longer/path?q=1")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		sizes[name] = m.OriginalSize
	}
	if sizes[BackendSkip2] != sizes[BackendYeqown] || sizes[BackendGozxing] != sizes[BackendYeqown] {
		t.Errorf("logical sizes differ: %v", sizes)
	}
}

func TestGenerateInputLength(t *testing.T) {
	enc, _ := New(BackendYeqown)
	ok := strings.Repeat("a", MaxInputLength)
	if _, err := enc.Generate(context.Background(), ok); err != nil {
		t.Errorf("Generate(%d chars) error = %v", MaxInputLength, err)
	}
	_, err := enc.Generate(context.Background(), ok+"a")
	if !errors.Is(err, ErrInputTooLong) {
		t.Errorf("Generate(%d chars) error = %v, want ErrInputTooLong", MaxInputLength+1, err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	enc, _ := New("")
	if _, err := enc.Generate(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestInputLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"münchen", 7},
		{"😀", 2},
		{"a😀b", 4},
	}
	for _, tt := range tests {
		if got := InputLength(tt.in); got != tt.want {
			t.Errorf("InputLength(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCheckLengthCountsUTF16(t *testing.T) {
	// 1000 surrogate pairs hit the limit exactly.
	if err := CheckLength(strings.Repeat("😀", 1000)); err != nil {
		t.Errorf("CheckLength(1000 emoji) = %v", err)
	}
	if err := CheckLength(strings.Repeat("😀", 1000) + "a"); !errors.Is(err, ErrInputTooLong) {
		t.Errorf("CheckLength(1000 emoji + a) = %v, want ErrInputTooLong", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"wrapped too long", fmt.Errorf("x: %w", ErrInputTooLong), ErrInputTooLong},
		{"library too long", errors.New("content too long to encode"), ErrInputTooLong},
		{"init", fmt.Errorf("%w: boom", ErrInitFailed), ErrInitFailed},
		{"other", errors.New("boom"), ErrGenerationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		ok   bool
	}{
		{"ok", Matrix{Data: make([]byte, 21*21), Size: 21, OriginalSize: 21}, true},
		{"quiet zone", Matrix{Data: make([]byte, 29*29), Size: 29, OriginalSize: 21}, true},
		{"zero", Matrix{}, false},
		{"small physical", Matrix{Data: make([]byte, 4), Size: 2, OriginalSize: 3}, false},
		{"odd zone", Matrix{Data: make([]byte, 22*22), Size: 22, OriginalSize: 21}, false},
		{"short data", Matrix{Data: make([]byte, 10), Size: 21, OriginalSize: 21}, false},
	}
	for _, tt := range tests {
		if err := tt.m.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%t", tt.name, err, tt.ok)
		}
	}
}
