package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
	"github.com/cristianadrielbraun/nextqr/internal/i18n"
	"github.com/cristianadrielbraun/nextqr/internal/popup"
	"github.com/cristianadrielbraun/nextqr/internal/render"
	"github.com/cristianadrielbraun/nextqr/web/components"
)

// previewLogoWait bounds how long a preview response waits for the deferred
// logo pass before sending the symbol without it.
const previewLogoWait = 500 * time.Millisecond

type inputRequest struct {
	Text string `json:"text"`
}

// stateResponse is the popup state as the page script consumes it.
type stateResponse struct {
	Input                string          `json:"input"`
	Pending              bool            `json:"pending"`
	Loading              bool            `json:"loading"`
	Error                string          `json:"error,omitempty"`
	ErrorType            popup.ErrorType `json:"errorType,omitempty"`
	ShowInputLengthError bool            `json:"showInputLengthError"`
	HasData              bool            `json:"hasData"`
	Disabled             bool            `json:"disabled"`
	Revision             uint64          `json:"revision"`
	Modules              int             `json:"modules"`
	Filename             string          `json:"filename"`
}

func (h *Handler) stateFor(c *gin.Context) stateResponse {
	st := h.session.State()
	l := h.localizer(c)
	resp := stateResponse{
		Input:                st.Input,
		Pending:              st.Pending,
		Loading:              st.Loading,
		ErrorType:            st.ErrorType,
		ShowInputLengthError: st.ShowInputLengthError(),
		HasData:              st.HasData(),
		Disabled:             st.ActionsDisabled(),
		Revision:             st.Revision,
		Modules:              st.Modules(),
		Filename:             h.session.DownloadName(),
	}
	if st.Error != "" {
		resp.Error = popup.Message(l, st.ErrorType)
	}
	return resp
}

// Index renders the popup page. A ?text= parameter seeds the input, the
// way the popup opens with the current tab's URL.
func (h *Handler) Index(c *gin.Context) {
	if text, ok := c.GetQuery("text"); ok && text != h.session.Input() {
		// The stored result outlives this request; a client hanging up
		// must not turn into a generation error.
		h.session.Generate(context.WithoutCancel(c.Request.Context()), text)
	}

	l := h.localizer(c)
	s := h.stateFor(c)
	props := components.PopupProps{
		Lang: l.Lang(),
		Labels: components.Labels{
			Title:       l.T(i18n.KeyTitle),
			Shortcut:    l.T(i18n.KeyShortcut),
			Close:       l.T(i18n.KeyClose),
			InputLabel:  l.T(i18n.KeyInputLabel),
			Placeholder: l.T(i18n.KeyInputPlaceholder),
			PreviewAlt:  l.T(i18n.KeyPreviewAlt),
			Tips:        l.T(i18n.KeyTips),
			Copy:        l.T(i18n.KeyCopy),
			Copied:      l.T(i18n.KeyCopied),
			Download:    l.T(i18n.KeyDownload),
		},
		Input:       s.Input,
		MaxLength:   encoder.MaxInputLength,
		DisplaySize: render.PreviewDisplaySize,
		HasData:     s.HasData,
		Disabled:    s.Disabled,
		Revision:    s.Revision,
	}
	if s.ShowInputLengthError {
		props.LengthError = s.Error
	} else {
		props.Error = s.Error
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := components.Popup(props).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("render popup page", "error", err)
	}
}

// SetInput records new input text; generation runs after the debounce.
func (h *Handler) SetInput(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.session.SetInput(req.Text)
	c.JSON(http.StatusAccepted, h.stateFor(c))
}

// State returns the current popup state.
func (h *Handler) State(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.stateFor(c))
}

// Preview serves the preview render of the current symbol.
func (h *Handler) Preview(c *gin.Context) {
	f, err := h.session.Preview()
	if err != nil {
		h.abortWithError(c, http.StatusNotFound, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), previewLogoWait)
	defer cancel()
	if err := f.Wait(ctx); err != nil {
		h.log.Debug("serving preview before the logo landed")
	}

	var buf bytes.Buffer
	if err := f.EncodePNG(&buf); err != nil {
		h.abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("X-QR-Display-Size", strconv.Itoa(f.DisplaySize()))
	c.Header("X-QR-Logo", strconv.FormatBool(f.HasLogo()))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ExportPNG serves the export render inline, for the page's clipboard copy.
func (h *Handler) ExportPNG(c *gin.Context) {
	data, err := h.session.ExportPNG(c.Request.Context())
	if err != nil {
		h.abortWithError(c, exportStatus(err), err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

// Download serves the export render as an attachment named after the
// input's host.
func (h *Handler) Download(c *gin.Context) {
	data, err := h.session.ExportPNG(c.Request.Context())
	if err != nil {
		h.abortWithError(c, exportStatus(err), err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.session.DownloadName()))
	c.Data(http.StatusOK, "image/png", data)
}

// Copy puts the export render on the server's clipboard, falling back to
// the input text, and answers with a toast fragment.
func (h *Handler) Copy(c *gin.Context) {
	l := h.localizer(c)
	kind, err := h.session.Copy(c.Request.Context())

	status := http.StatusOK
	switch {
	case errors.Is(err, popup.ErrNoData):
		status = http.StatusConflict
		h.writeToast(c, status, l.T(i18n.KeyErrNothingToExport), "", "warning")
	case err != nil:
		status = http.StatusBadGateway
		h.writeToast(c, status, l.T(i18n.KeyCopyFailed), err.Error(), "error")
	case kind == popup.CopiedText:
		h.writeToast(c, status, l.T(i18n.KeyCopied), l.T(i18n.KeyCopiedText), "info")
	default:
		h.writeToast(c, status, l.T(i18n.KeyCopied), "", "success")
	}
}

func exportStatus(err error) int {
	if errors.Is(err, popup.ErrNoData) {
		return http.StatusNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
