package httpserver

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digit-identifier/api/internal/handle"
	"digit-identifier/api/internal/util"
)

type replyEngine string

func (e replyEngine) Name() string     { return "fake" }
func (e replyEngine) GetModel() string { return "fake-1" }
func (e replyEngine) Classify(context.Context, []byte, string) (string, error) {
	return string(e), nil
}

func newRoutes(origins ...string) http.Handler {
	return Routes(handle.New(replyEngine("42"), 1<<20), origins)
}

func TestRoutesRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	newRoutes("*").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "`+handle.RootMessage+`"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(util.RequestIDHeader))
}

func TestRoutesUnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newRoutes("*").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesPredict(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="d.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	pw, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = pw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(util.RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	newRoutes("*").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"digits": "42", "no_digit": false, "raw_response": "42"}`, rec.Body.String())
	assert.Equal(t, "req-7", rec.Header().Get(util.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	newRoutes("*").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.True(t, strings.EqualFold("content-type", rec.Header().Get("Access-Control-Allow-Headers")))
}

func TestCORSOriginList(t *testing.T) {
	routes := newRoutes("https://a.example")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://a.example")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	assert.Equal(t, "https://a.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.EqualFold(util.RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers")))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s := New(Options{Addr: "127.0.0.1:0"}, handle.New(replyEngine("1"), 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
