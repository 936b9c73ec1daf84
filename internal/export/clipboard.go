package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard command is
// configured for the requested content.
var ErrClipboardUnavailable = errors.New("clipboard: no command configured")

// Clipboard receives copied images and text.
type Clipboard interface {
	CopyImage(ctx context.Context, png []byte) error
	CopyText(ctx context.Context, text string) error
}

// CommandClipboard copies by piping content into external commands such as
// wl-copy, xclip or pbcopy.
type CommandClipboard struct {
	image []string
	text  []string
	log   *slog.Logger
}

// NewCommandClipboard builds a clipboard from shell-style command lines.
// An empty command disables that content type.
func NewCommandClipboard(imageCmd, textCmd string, log *slog.Logger) *CommandClipboard {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CommandClipboard{
		image: strings.Fields(imageCmd),
		text:  strings.Fields(textCmd),
		log:   log,
	}
}

// CopyImage pipes PNG bytes to the image command.
func (c *CommandClipboard) CopyImage(ctx context.Context, png []byte) error {
	return c.run(ctx, c.image, bytes.NewReader(png))
}

// CopyText pipes text to the text command.
func (c *CommandClipboard) CopyText(ctx context.Context, text string) error {
	return c.run(ctx, c.text, strings.NewReader(text))
}

func (c *CommandClipboard) run(ctx context.Context, argv []string, stdin io.Reader) error {
	if len(argv) == 0 {
		return ErrClipboardUnavailable
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("clipboard %s: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("clipboard %s: %w", argv[0], err)
	}
	c.log.Debug("clipboard updated", "command", argv[0])
	return nil
}
