package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cristianadrielbraun/nextqr/internal/config"
	"github.com/cristianadrielbraun/nextqr/internal/encoder"
	"github.com/cristianadrielbraun/nextqr/internal/export"
	"github.com/cristianadrielbraun/nextqr/internal/i18n"
	"github.com/cristianadrielbraun/nextqr/internal/popup"
	"github.com/cristianadrielbraun/nextqr/internal/render"
)

// app is the wired object graph shared by every command.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	enc      encoder.Encoder
	renderer *render.Renderer
	messages *i18n.Localizer
	session  *popup.Session
}

// newApp loads configuration and wires all components together. Logs go to
// stderr so render output on stdout stays clean.
func newApp(configPath string) (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := cfg.Logger(os.Stderr)
	slog.SetDefault(log)

	enc, initErr := encoder.New(cfg.Encoder)
	if initErr != nil {
		log.Error("encoder init failed", "encoder", cfg.Encoder, "error", initErr)
	}

	source := render.DefaultLogo()
	if cfg.LogoPath != "" {
		source = render.FileLogo(cfg.LogoPath)
	}
	cache := render.NewLogoCache(source, log)
	renderer := render.New(cache, render.WithLogger(log))
	messages := i18n.New(cfg.Locale)

	session := popup.NewSession(popup.Options{
		Encoder:   enc,
		InitErr:   initErr,
		Renderer:  renderer,
		Clipboard: export.NewCommandClipboard(cfg.Clipboard.ImageCommand, cfg.Clipboard.TextCommand, log),
		Files:     export.DirSink{Dir: cfg.OutputDir},
		Messages:  messages,
		Logger:    log,
		Debounce:  cfg.Debounce.Duration,
	})

	return &app{
		cfg:      cfg,
		log:      log,
		enc:      enc,
		renderer: renderer,
		messages: messages,
		session:  session,
	}, nil
}

func (a *app) Close() { a.session.Close() }

// reportSaved tells the user, in the configured locale, where a render went.
func (a *app) reportSaved(w io.Writer, path string) {
	fmt.Fprintln(w, a.messages.T(i18n.KeySaved, path))
}
