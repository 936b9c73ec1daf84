package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, p PopupProps) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Popup(p).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPopupEscapesInput(t *testing.T) {
	html := render(t, PopupProps{
		Lang:        "en",
		Labels:      Labels{Title: "Scan QR Code", Copy: "Copy", Download: "Download"},
		Input:       `"><script>alert(1)</script>`,
		MaxLength:   2000,
		DisplaySize: 240,
	})
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("input was not escaped")
	}
	for _, want := range []string{`maxlength="2000"`, `width="240"`, `<title>Scan QR Code</title>`, `lang="en"`} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %s", want)
		}
	}
	if strings.Contains(html, "%!") {
		t.Error("page has a formatting error")
	}
}

func TestPopupDisabledButtons(t *testing.T) {
	html := render(t, PopupProps{Disabled: true})
	if n := strings.Count(html, " disabled>"); n != 2 {
		t.Errorf("%d disabled buttons, want 2", n)
	}
	html = render(t, PopupProps{HasData: true, Revision: 3})
	if strings.Contains(html, " disabled>") {
		t.Error("buttons disabled with data")
	}
	if !strings.Contains(html, `data-revision="3"`) {
		t.Error("revision missing")
	}
}

func TestPopupErrors(t *testing.T) {
	html := render(t, PopupProps{LengthError: "too long"})
	if !strings.Contains(html, "show-error") || !strings.Contains(html, "with-error") {
		t.Error("length error not shown")
	}
	html = render(t, PopupProps{Error: "generator failed"})
	if !strings.Contains(html, `class="qr-preview hidden"`) || !strings.Contains(html, `class="chromium-qr-error" role="alert">generator failed`) {
		t.Error("generation error does not replace the preview")
	}
}

func TestClassHelpers(t *testing.T) {
	if got := ErrorClass(true); got != "chromium-error-container show-error" {
		t.Errorf("ErrorClass(true) = %q", got)
	}
	if got := ButtonRowClass(false); !strings.HasSuffix(got, "without-error") {
		t.Errorf("ButtonRowClass(false) = %q", got)
	}
}
