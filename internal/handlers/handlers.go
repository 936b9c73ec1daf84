package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
	"github.com/cristianadrielbraun/nextqr/internal/i18n"
	"github.com/cristianadrielbraun/nextqr/internal/popup"
	"github.com/cristianadrielbraun/nextqr/internal/render"
)

// Deps are the collaborators HTTP handlers need.
type Deps struct {
	Session  *popup.Session
	Renderer *render.Renderer
	// Encoder serves the stateless /api/qr endpoint. Nil answers
	// INIT_FAILED.
	Encoder  encoder.Encoder
	Messages *i18n.Localizer
	Logger   *slog.Logger
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	session  *popup.Session
	renderer *render.Renderer
	enc      encoder.Encoder
	msg      *i18n.Localizer
	log      *slog.Logger
}

// New returns a new Handler instance.
func New(d Deps) *Handler {
	h := &Handler{
		session:  d.Session,
		renderer: d.Renderer,
		enc:      d.Encoder,
		msg:      d.Messages,
		log:      d.Logger,
	}
	if h.renderer == nil {
		h.renderer = render.New(nil)
	}
	if h.msg == nil {
		h.msg = i18n.New("en")
	}
	if h.log == nil {
		h.log = slog.New(slog.DiscardHandler)
	}
	return h
}

// Routes registers the popup page and API on r.
func (h *Handler) Routes(r gin.IRouter) {
	r.GET("/", h.Index)

	api := r.Group("/api")
	{
		api.POST("/input", h.SetInput)
		api.GET("/state", h.State)
		api.GET("/preview.png", h.Preview)
		api.GET("/export.png", h.ExportPNG)
		api.GET("/download", h.Download)
		api.POST("/copy", h.Copy)
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
}

// localizer picks the request language: ?lang=, then Accept-Language,
// then the configured locale.
func (h *Handler) localizer(c *gin.Context) *i18n.Localizer {
	if lang := c.Query("lang"); lang != "" {
		return i18n.New(lang)
	}
	return i18n.FromAcceptLanguage(c.GetHeader("Accept-Language"), h.msg)
}

// abortWithError answers a JSON error carrying the popup error type, when
// there is one.
func (h *Handler) abortWithError(c *gin.Context, status int, err error) {
	l := h.localizer(c)
	body := gin.H{"error": err.Error()}

	switch {
	case errors.Is(err, popup.ErrNoData):
		body["error"] = l.T(i18n.KeyErrNothingToExport)
	case errors.Is(err, encoder.ErrInputTooLong), errors.Is(err, encoder.ErrInitFailed), errors.Is(err, encoder.ErrGenerationFailed):
		kind := errorType(err)
		body["error"] = popup.Message(l, kind)
		body["errorType"] = kind
	}
	c.AbortWithStatusJSON(status, body)
}

func errorType(err error) popup.ErrorType {
	switch {
	case errors.Is(err, encoder.ErrInputTooLong):
		return popup.ErrorInputTooLong
	case errors.Is(err, encoder.ErrInitFailed):
		return popup.ErrorInitFailed
	default:
		return popup.ErrorGenerationFailed
	}
}

// statusFor maps a classified encoder error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, encoder.ErrInputTooLong):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, encoder.ErrInitFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
