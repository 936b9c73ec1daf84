package handlers

import (
	"github.com/gin-gonic/gin"

	toast "github.com/cristianadrielbraun/nextqr/web/components/ui/toast"
)

// toastDuration is how long feedback toasts stay up, in milliseconds.
const toastDuration = 1500

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	h.writeToast(c, 200, c.PostForm("title"), c.PostForm("description"), c.PostForm("variant"))
}

func (h *Handler) writeToast(c *gin.Context, status int, title, description, variant string) {
	var v toast.Variant
	switch variant {
	case "error", "destructive":
		v = toast.VariantError
	case "warning":
		v = toast.VariantWarning
	case "info":
		v = toast.VariantInfo
	default:
		v = toast.VariantSuccess
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)

	err := toast.Toast(toast.Props{
		ID:          "copy-toast",
		Title:       title,
		Description: description,
		Variant:     v,
		Position:    toast.PositionBottomRight,
		Duration:    toastDuration,
		Dismissible: c.PostForm("dismissible") == "on" || v == toast.VariantError,
		Icon:        true,
	}).Render(c.Request.Context(), c.Writer)
	if err != nil {
		h.log.Error("render toast", "error", err)
	}
}
