package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/nextqr/internal/export"
	"github.com/cristianadrielbraun/nextqr/internal/handlers"
	"github.com/cristianadrielbraun/nextqr/internal/i18n"
	"github.com/cristianadrielbraun/nextqr/internal/popup"
	"github.com/cristianadrielbraun/nextqr/web/assets"
)

var version = "v0.1.0"

func main() {
	var configPath string
	root := &cobra.Command{
		Use:           "nextqr",
		Short:         "Render browser-style QR codes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")

	// --- serve command -------------------------------------------------------
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the QR popup and API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.AddCommand(serveCmd)

	// --- render command ------------------------------------------------------
	var output string
	var preview bool
	renderCmd := &cobra.Command{
		Use:   "render TEXT",
		Short: "Render TEXT as a QR code PNG",
		Long: "Render TEXT at export size. Without --output the PNG goes to stdout when it is\n" +
			"redirected, or into the configured output directory named after the URL host.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(configPath, args[0], output, preview)
		},
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file ('-' for stdout)")
	renderCmd.Flags().BoolVar(&preview, "preview", false, "Render the preview instead of the export")
	root.AddCommand(renderCmd)

	// --- copy command --------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "copy TEXT",
		Short: "Copy the QR code for TEXT to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(configPath, args[0])
		},
	})

	// --- filename command ----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "filename TEXT",
		Short: "Print the download filename for TEXT",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), export.Filename(args[0]))
		},
	})

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nextqr %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runServe wires the HTTP server and blocks until SIGINT or SIGTERM.
func runServe(configPath string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Static assets
	r.StaticFS("/web/assets", http.FS(assets.FS))

	handlers.New(handlers.Deps{
		Session:  a.session,
		Renderer: a.renderer,
		Encoder:  a.enc,
		Messages: a.messages,
		Logger:   a.log,
	}).Routes(r)

	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		a.log.Info("nextqr listening", "addr", srv.Addr, "version", version, "encoder", a.cfg.Encoder)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.log.Error("HTTP server shutdown error", "error", err)
	}
	return nil
}

// generate runs one synchronous generation and turns a failed state into an
// error.
func generate(ctx context.Context, a *app, text string) error {
	st := a.session.Generate(ctx, text)
	if st.Error != "" {
		return fmt.Errorf("%s (%s)", st.Error, st.ErrorType)
	}
	if !st.HasData() {
		return popup.ErrNoData
	}
	return nil
}

func runRender(configPath, text, output string, preview bool) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := generate(ctx, a, text); err != nil {
		return err
	}

	var data []byte
	if preview {
		f, err := a.session.Preview()
		if err != nil {
			return err
		}
		if err := f.Wait(ctx); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := f.EncodePNG(&buf); err != nil {
			return err
		}
		data = buf.Bytes()
	} else if output != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		data, err = a.session.ExportPNG(ctx)
		if err != nil {
			return err
		}
	}

	switch {
	case output == "-" || (output == "" && !isatty.IsTerminal(os.Stdout.Fd())):
		_, err = os.Stdout.Write(data)
		return err
	case output != "":
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		a.reportSaved(os.Stderr, output)
		return nil
	case preview:
		path, err := export.DirSink{Dir: a.cfg.OutputDir}.Save(ctx, a.session.DownloadName(), data)
		if err != nil {
			return err
		}
		a.reportSaved(os.Stdout, path)
		return nil
	default:
		path, err := a.session.Download(ctx)
		if err != nil {
			return err
		}
		a.reportSaved(os.Stdout, path)
		return nil
	}
}

func runCopy(configPath, text string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := generate(ctx, a, text); err != nil {
		return err
	}
	kind, err := a.session.Copy(ctx)
	if err != nil {
		return err
	}
	msg := a.messages.T(i18n.KeyCopied)
	if kind == popup.CopiedText {
		msg = a.messages.T(i18n.KeyCopiedText)
	}
	fmt.Fprintln(os.Stderr, msg)
	return nil
}
