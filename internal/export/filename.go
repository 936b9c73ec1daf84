// Package export names, copies and saves rendered QR images.
package export

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultFilename is used when the input is not a URL with a usable host.
const DefaultFilename = "qrcode_firefox.png"

var (
	ipv4Host   = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	unsafeHost = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// Filename derives the download filename for input. Absolute URLs with a
// non-IPv4 hostname give qrcode_<host>.png; anything else gives
// DefaultFilename.
func Filename(input string) string {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Scheme == "" {
		return DefaultFilename
	}
	host := u.Hostname()
	if host == "" {
		return DefaultFilename
	}

	if strings.Contains(host, ":") {
		// IPv6 literals keep their brackets, which the sanitizer replaces.
		host = "[" + host + "]"
	} else if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	host = strings.ToLower(host)

	if ipv4Host.MatchString(host) {
		return DefaultFilename
	}
	return "qrcode_" + unsafeHost.ReplaceAllString(host, "_") + ".png"
}
