// Package assets embeds the static files served with the popup view.
package assets

import "embed"

// FS holds every embedded asset.
//
//go:embed logo.svg
var FS embed.FS

// LogoSVG is the default center logo.
//
//go:embed logo.svg
var LogoSVG []byte
