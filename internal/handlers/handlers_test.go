package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/nextqr/internal/encoder"
	"github.com/cristianadrielbraun/nextqr/internal/i18n"
	"github.com/cristianadrielbraun/nextqr/internal/popup"
	"github.com/cristianadrielbraun/nextqr/internal/render"
)

type stubClipboard struct {
	imageErr error
	image    []byte
	text     string
}

func (c *stubClipboard) CopyImage(_ context.Context, png []byte) error {
	if c.imageErr != nil {
		return c.imageErr
	}
	c.image = png
	return nil
}

func (c *stubClipboard) CopyText(_ context.Context, text string) error {
	c.text = text
	return nil
}

type testServer struct {
	router  *gin.Engine
	session *popup.Session
	clip    *stubClipboard
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enc, err := encoder.New("")
	if err != nil {
		t.Fatal(err)
	}
	logo := image.NewRGBA(image.Rect(0, 0, 20, 22))
	for i := range logo.Pix {
		logo.Pix[i] = 0x80
	}
	cache := render.NewLogoCache(func() (image.Image, error) { return logo, nil }, nil)
	renderer := render.New(cache)
	clip := &stubClipboard{}
	session := popup.NewSession(popup.Options{
		Encoder:   enc,
		Renderer:  renderer,
		Clipboard: clip,
		Messages:  i18n.New("en"),
	})

	r := gin.New()
	New(Deps{Session: session, Renderer: renderer, Encoder: enc, Messages: i18n.New("en")}).Routes(r)
	return &testServer{router: r, session: session, clip: clip}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) state(t *testing.T) stateResponse {
	t.Helper()
	w := s.get("/api/state")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/state = %d", w.Code)
	}
	var st stateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	return st
}

func (s *testServer) input(text string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(inputRequest{Text: text})
	req := httptest.NewRequest(http.MethodPost, "/api/input", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func decodePNG(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func TestInputAndState(t *testing.T) {
	s := newTestServer(t)

	st := s.state(t)
	if st.HasData || !st.Disabled || st.Filename != "qrcode_firefox.png" {
		t.Errorf("initial state = %+v", st)
	}

	if w := s.input("https://example.com"); w.Code != http.StatusAccepted {
		t.Fatalf("POST /api/input = %d", w.Code)
	}
	st = s.state(t)
	if !st.HasData || st.Disabled || st.Pending || st.Revision == 0 {
		t.Errorf("state after input = %+v", st)
	}
	if st.Modules == 0 || st.Filename != "qrcode_example.com.png" {
		t.Errorf("modules=%d filename=%q", st.Modules, st.Filename)
	}
}

func TestInputBadBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/input", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	if w := s.do(req); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInputTooLong(t *testing.T) {
	s := newTestServer(t)
	s.input(strings.Repeat("a", 2001))

	st := s.state(t)
	if !st.ShowInputLengthError || st.ErrorType != popup.ErrorInputTooLong || st.HasData {
		t.Errorf("state = %+v", st)
	}
	if !strings.Contains(st.Error, "2000") {
		t.Errorf("error = %q", st.Error)
	}
}

func TestStateLocalized(t *testing.T) {
	s := newTestServer(t)
	s.input(strings.Repeat("a", 2001))

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	var st stateResponse
	if err := json.Unmarshal(s.do(req).Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(st.Error, "输入内容过长") {
		t.Errorf("zh error = %q", st.Error)
	}
}

func TestPreviewAndExport(t *testing.T) {
	s := newTestServer(t)
	if w := s.get("/api/preview.png"); w.Code != http.StatusNotFound {
		t.Errorf("preview without data = %d, want 404", w.Code)
	}

	s.input("https://example.com")
	modules := s.state(t).Modules

	w := s.get("/api/preview.png")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("preview = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if w.Header().Get("X-QR-Display-Size") != "240" {
		t.Errorf("X-QR-Display-Size = %q", w.Header().Get("X-QR-Display-Size"))
	}
	if got, want := decodePNG(t, w.Body.Bytes()).Bounds().Dx(), modules*10+80; got != want {
		t.Errorf("preview buffer = %d px, want %d", got, want)
	}

	w = s.get("/api/export.png")
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d", w.Code)
	}
	if got, want := decodePNG(t, w.Body.Bytes()).Bounds().Dx(), modules*10+80; got != want {
		t.Errorf("export = %d px, want %d", got, want)
	}
}

func TestDownload(t *testing.T) {
	s := newTestServer(t)
	s.input("https://sub.example.org/x")

	w := s.get("/api/download")
	if w.Code != http.StatusOK {
		t.Fatalf("download = %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="qrcode_sub.example.org.png"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	decodePNG(t, w.Body.Bytes())
}

func TestCopy(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodPost, "/api/copy", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("copy without data = %d, want 409", w.Code)
	}

	s.input("https://example.com")
	w = s.do(httptest.NewRequest(http.MethodPost, "/api/copy", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Copied") {
		t.Fatalf("copy = %d %s", w.Code, w.Body.String())
	}
	decodePNG(t, s.clip.image)

	s.clip.imageErr = errors.New("no image clipboard")
	w = s.do(httptest.NewRequest(http.MethodPost, "/api/copy", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `data-variant="info"`) {
		t.Errorf("fallback copy = %d %s", w.Code, w.Body.String())
	}
	if s.clip.text != "https://example.com" {
		t.Errorf("text fallback = %q", s.clip.text)
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	w := s.get("/?text=" + url.QueryEscape("https://example.com"))
	if w.Code != http.StatusOK {
		t.Fatalf("index = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", `value="https://example.com"`, "Scan QR Code", `maxlength="2000"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !s.session.State().HasData() {
		t.Error("?text= did not seed the session")
	}

	req := httptest.NewRequest(http.MethodGet, "/?lang=zh-Hans", nil)
	if body := s.do(req).Body.String(); !strings.Contains(body, "扫描二维码") || !strings.Contains(body, `lang="zh-Hans"`) {
		t.Error("zh-Hans page not localized")
	}
}

func TestIndexClientGone(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/?text=https%3A%2F%2Fexample.org", nil).WithContext(ctx)
	s.do(req)

	st := s.session.State()
	if st.Error != "" || st.ErrorType != popup.ErrorNone || !st.HasData() {
		t.Errorf("state after canceled request = %+v, want generated symbol", st)
	}
}

func TestQRCodeHandler(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		ctype  string
	}{
		{"missing text", "", http.StatusBadRequest, "application/json; charset=utf-8"},
		{"styled png", "text=hello", http.StatusOK, "image/png"},
		{"styled jpg", "text=hello&format=jpeg", http.StatusOK, "image/jpeg"},
		{"download", "text=https://example.com&size=download", http.StatusOK, "image/png"},
		{"plain", "text=hello&style=plain", http.StatusOK, "image/png"},
		{"colors", "text=hello&fg=%23336699&bg=fff", http.StatusOK, "image/png"},
		{"too long", "text=" + strings.Repeat("a", 2001), http.StatusRequestEntityTooLarge, "application/json; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.get("/api/qr?" + tt.query)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", got, tt.ctype)
			}
		})
	}

	w := s.get("/api/qr?text=" + url.QueryEscape("https://example.com") + "&size=download")
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="qrcode_example.com.png"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if dbg := w.Header().Get("X-QR-Debug"); !strings.Contains(dbg, "logo=true") || !strings.Contains(dbg, "style=styled") {
		t.Errorf("X-QR-Debug = %q", dbg)
	}

	w = s.get("/api/qr?text=" + strings.Repeat("a", 2001))
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["errorType"] != string(popup.ErrorInputTooLong) {
		t.Errorf("errorType = %q", body["errorType"])
	}
}

func TestQRCodeHandlerNoEncoder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(Deps{Session: popup.NewSession(popup.Options{})}).Routes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qr?text=hi", nil))
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), string(popup.ErrorInitFailed)) {
		t.Errorf("no encoder = %d %s", w.Code, w.Body.String())
	}
}

func TestGenericToast(t *testing.T) {
	s := newTestServer(t)
	form := url.Values{"title": {"Saved"}, "variant": {"warning"}, "dismissible": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/api/htmx/toast", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := s.do(req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Saved") || !strings.Contains(body, `data-variant="warning"`) || !strings.Contains(body, "toast-close") {
		t.Errorf("toast = %s", body)
	}
}

func TestParseColorParam(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"", def},
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"00ff00", color.RGBA{0, 255, 0, 255}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}},
		{"transparent", color.RGBA{}},
		{"zzzzzz", def},
		{"#12345", def},
	}
	for _, tt := range tests {
		if got := parseColorParam(tt.in, def); got != tt.want {
			t.Errorf("parseColorParam(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
