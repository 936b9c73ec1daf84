package toast

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestToast(t *testing.T) {
	var buf bytes.Buffer
	err := Toast(Props{
		Title:       "Copied",
		Description: "<b>text</b>",
		Variant:     VariantError,
		Position:    PositionBottomRight,
		Duration:    2000,
		Dismissible: true,
		Icon:        true,
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{"Copied", "&lt;b&gt;text&lt;/b&gt;", `data-variant="error"`, `data-duration="2000"`, "bg-red-50", "bottom-0", "toast-close", "setTimeout"} {
		if !strings.Contains(html, want) {
			t.Errorf("toast missing %q in %s", want, html)
		}
	}
}

func TestToastDefaults(t *testing.T) {
	var buf bytes.Buffer
	if err := Toast(Props{Title: "hi"}).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	if !strings.Contains(html, `data-variant="default"`) || strings.Contains(html, "setTimeout") || strings.Contains(html, "toast-close") {
		t.Errorf("unexpected default toast: %s", html)
	}
}

func TestClassesMergeOverride(t *testing.T) {
	got := Classes(Props{Variant: VariantInfo, Class: "p-5"})
	if strings.Contains(got, "p-3") || !strings.Contains(got, "p-5") {
		t.Errorf("Classes() = %q, want p-5 to replace p-3", got)
	}
}
