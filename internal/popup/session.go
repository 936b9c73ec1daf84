// Package popup holds the state behind the QR popup view: the text being
// encoded, debounced latest-wins generation, error classification and the
// copy and download actions.
package popup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
	"github.com/cristianadrielbraun/nextqr/internal/export"
	"github.com/cristianadrielbraun/nextqr/internal/i18n"
	"github.com/cristianadrielbraun/nextqr/internal/render"
)

// ErrNoData is returned by actions that need a generated symbol.
var ErrNoData = errors.New("popup: no QR code to export")

// CopyKind says what ended up on the clipboard.
type CopyKind int

const (
	CopiedNothing CopyKind = iota
	CopiedImage
	CopiedText
)

// Options configures a Session.
type Options struct {
	// Encoder generates matrices. A nil Encoder, or a non-nil InitErr,
	// leaves the session in the INIT_FAILED state.
	Encoder encoder.Encoder
	InitErr error

	Renderer  *render.Renderer
	Clipboard export.Clipboard
	Files     export.Sink
	Messages  *i18n.Localizer
	Logger    *slog.Logger

	// Debounce delays generation after SetInput. Zero generates
	// synchronously.
	Debounce time.Duration
}

// Session is one popup view. It is safe for concurrent use.
type Session struct {
	enc      encoder.Encoder
	renderer *render.Renderer
	clip     export.Clipboard
	files    export.Sink
	msg      *i18n.Localizer
	log      *slog.Logger
	debounce *Debouncer

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewSession returns a Session. It starts preloading the renderer's logo so
// the first preview usually has it.
func NewSession(opts Options) *Session {
	s := &Session{
		enc:      opts.Encoder,
		renderer: opts.Renderer,
		clip:     opts.Clipboard,
		files:    opts.Files,
		msg:      opts.Messages,
		log:      opts.Logger,
		debounce: NewDebouncer(opts.Debounce),
	}
	if s.renderer == nil {
		s.renderer = render.New(nil)
	}
	if s.msg == nil {
		s.msg = i18n.New("en")
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}

	if opts.InitErr != nil || s.enc == nil {
		s.enc = nil
		s.state.ErrorType = ErrorInitFailed
		s.state.Error = Message(s.msg, ErrorInitFailed)
		s.log.Error("encoder unavailable", "error", opts.InitErr)
	}
	if logo := s.renderer.Logo(); logo != nil {
		logo.Ensure()
	}
	return s
}

// Message localizes an error type.
func Message(l *i18n.Localizer, t ErrorType) string {
	switch t {
	case ErrorNone:
		return ""
	case ErrorInitFailed:
		return l.T(i18n.KeyErrInitFailed)
	case ErrorInputTooLong:
		return l.InputTooLong(encoder.MaxInputLength)
	default:
		return l.T(i18n.KeyErrGenerateFailed)
	}
}

// SetInput records text as the current input and schedules a debounced
// generation for it.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state.Input = text
	s.state.Pending = true
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		s.generate(context.Background(), text, seq)
	})
}

// Input returns the current input text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Input
}

// State returns a snapshot of the view state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ClearError hides the current error without touching the symbol.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
	s.state.ErrorType = ErrorNone
}

// Generate encodes text right away and stores the result, unless a newer
// request arrives in the meantime. It supersedes any input still waiting
// for the debounce. It returns the state after the call.
func (s *Session) Generate(ctx context.Context, text string) State {
	s.debounce.Cancel()
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()
	return s.generate(ctx, text, seq)
}

// generate runs request seq. Requests are numbered when they are made, so a
// debounced input that fires after a newer request does nothing.
func (s *Session) generate(ctx context.Context, text string, seq uint64) State {
	s.mu.Lock()
	if seq != s.seq {
		st := s.state
		s.mu.Unlock()
		return st
	}
	s.state.Input = text
	s.state.Pending = false

	if strings.TrimSpace(text) == "" {
		s.clear(ErrorNone)
		st := s.state
		s.mu.Unlock()
		return st
	}
	if err := encoder.CheckLength(text); err != nil {
		s.clear(ErrorInputTooLong)
		st := s.state
		s.mu.Unlock()
		return st
	}
	if s.enc == nil {
		s.clear(ErrorInitFailed)
		st := s.state
		s.mu.Unlock()
		return st
	}

	s.state.Error = ""
	s.state.ErrorType = ErrorNone
	s.state.Loading = true
	s.mu.Unlock()

	m, err := s.enc.Generate(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.log.Debug("discarding stale generation", "seq", seq, "current", s.seq)
		return s.state
	}
	if err != nil {
		kind := errorTypeOf(encoder.Classify(err))
		s.log.Warn("QR generation failed", "error", err, "errorType", string(kind))
		s.clear(kind)
		return s.state
	}

	s.state.Loading = false
	s.state.Matrix = m
	s.state.Revision++
	s.log.Debug("QR generated", "modules", m.OriginalSize, "size", m.Size)
	return s.state
}

// clear drops the symbol and sets the given error. Callers hold s.mu.
func (s *Session) clear(kind ErrorType) {
	s.state.Loading = false
	s.state.Matrix = encoder.Matrix{}
	s.state.ErrorType = kind
	s.state.Error = Message(s.msg, kind)
	s.state.Revision++
}

// Preview renders the current symbol for display.
func (s *Session) Preview() (*render.Frame, error) {
	st := s.State()
	if !st.HasData() {
		return nil, ErrNoData
	}
	return s.renderer.Preview(st.Matrix)
}

// ExportPNG renders the current symbol at export size, waiting for the logo
// first.
func (s *Session) ExportPNG(ctx context.Context) ([]byte, error) {
	st := s.State()
	if !st.HasData() {
		return nil, ErrNoData
	}
	f, err := s.renderer.Export(ctx, st.Matrix)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return buf.Bytes(), nil
}

// Copy puts the export image on the clipboard. When that fails it copies
// the input text instead; an error is returned only if both fail.
func (s *Session) Copy(ctx context.Context) (CopyKind, error) {
	if s.clip == nil {
		return CopiedNothing, export.ErrClipboardUnavailable
	}
	input := s.Input()

	data, err := s.ExportPNG(ctx)
	if errors.Is(err, ErrNoData) {
		return CopiedNothing, err
	}
	if err == nil {
		err = s.clip.CopyImage(ctx, data)
		if err == nil {
			return CopiedImage, nil
		}
	}
	s.log.Warn("failed to copy QR code image, copying text", "error", err)

	if terr := s.clip.CopyText(ctx, input); terr != nil {
		s.log.Error("failed to copy text", "error", terr)
		return CopiedNothing, errors.Join(err, terr)
	}
	return CopiedText, nil
}

// DownloadName is the filename the current input downloads as.
func (s *Session) DownloadName() string {
	return export.Filename(s.Input())
}

// Download renders the export image and saves it through the file sink.
// It returns the path written.
func (s *Session) Download(ctx context.Context) (string, error) {
	if s.files == nil {
		return "", errors.New("popup: no download directory configured")
	}
	name := s.DownloadName()
	data, err := s.ExportPNG(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.files.Save(ctx, name, data)
	if err != nil {
		return "", err
	}
	s.log.Info("QR code saved", "path", path)
	return path, nil
}

// Close stops any pending debounced generation.
func (s *Session) Close() {
	s.debounce.Stop()
	s.mu.Lock()
	s.state.Pending = false
	s.mu.Unlock()
}
