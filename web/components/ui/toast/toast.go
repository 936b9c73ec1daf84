// Package toast renders short-lived notification fragments for HTMX-style
// swaps into the popup page.
package toast

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight     Position = "top-right"
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
)

type Props struct {
	ID            string
	Class         string
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      int // milliseconds; 0 keeps the toast until dismissed
	Dismissible   bool
	ShowIndicator bool
	Icon          bool
}

var positionClasses = map[Position]string{
	PositionTopRight:     "top-0 right-0",
	PositionTopLeft:      "top-0 left-0",
	PositionTopCenter:    "top-0 left-1/2 -translate-x-1/2",
	PositionBottomRight:  "bottom-0 right-0",
	PositionBottomLeft:   "bottom-0 left-0",
	PositionBottomCenter: "bottom-0 left-1/2 -translate-x-1/2",
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-gray-200 bg-white text-gray-900",
	VariantSuccess: "border-green-200 bg-green-50 text-green-900",
	VariantError:   "border-red-200 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-200 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-200 bg-blue-50 text-blue-900",
}

var icons = map[Variant]string{
	VariantSuccess: "&#10003;",
	VariantError:   "&#10005;",
	VariantWarning: "!",
	VariantInfo:    "i",
}

// Classes returns the merged class list for p.
func Classes(p Props) string {
	pos, ok := positionClasses[p.Position]
	if !ok {
		pos = positionClasses[PositionBottomRight]
	}
	variant, ok := variantClasses[p.Variant]
	if !ok {
		variant = variantClasses[VariantDefault]
	}
	return twmerge.Merge(
		"fixed z-50 m-4 flex max-w-xs items-start gap-2 rounded-lg border p-3 text-sm shadow-md",
		pos,
		variant,
		p.Class,
	)
}

// Toast renders a notification. Toasts with a Duration remove themselves.
func Toast(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		variant := p.Variant
		if variant == "" {
			variant = VariantDefault
		}
		id := p.ID
		if id == "" {
			id = "toast"
		}

		if _, err := fmt.Fprintf(w, `<div id="%s" class="%s" role="status" aria-live="polite" data-toast data-variant="%s" data-duration="%d">`,
			templ.EscapeString(id), templ.EscapeString(Classes(p)), templ.EscapeString(string(variant)), p.Duration); err != nil {
			return err
		}
		if icon, ok := icons[variant]; ok && p.Icon {
			if _, err := fmt.Fprintf(w, `<span class="toast-icon" aria-hidden="true">%s</span>`, icon); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<div class="flex-1">`); err != nil {
			return err
		}
		if p.Title != "" {
			if _, err := fmt.Fprintf(w, `<p class="font-medium">%s</p>`, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		if p.Description != "" {
			if _, err := fmt.Fprintf(w, `<p class="opacity-80">%s</p>`, templ.EscapeString(p.Description)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if p.Dismissible {
			if _, err := io.WriteString(w, `<button type="button" class="toast-close" aria-label="Dismiss" onclick="this.parentElement.remove()">&times;</button>`); err != nil {
				return err
			}
		}
		if p.ShowIndicator && p.Duration > 0 {
			if _, err := fmt.Fprintf(w, `<div class="toast-indicator" style="animation-duration:%dms"></div>`, p.Duration); err != nil {
				return err
			}
		}
		if p.Duration > 0 {
			if _, err := fmt.Fprintf(w, `<script>setTimeout(function(){var t=document.getElementById(%q);if(t)t.remove()},%d)</script>`, id, p.Duration); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
