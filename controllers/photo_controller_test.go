package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newPhotoRouter(places *fakePlaces) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/resources/maps/photo", NewPhotoController(places).ProxyPhoto)
	return r
}

func TestProxyPhoto_MissingPhotoRef(t *testing.T) {
	r := newPhotoRouter(&fakePlaces{})

	req := httptest.NewRequest(http.MethodGet, "/resources/maps/photo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without photoRef, got %d", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "error.missingPhotoRef" {
		t.Errorf("expected error.missingPhotoRef, got %s", code)
	}
}

func TestProxyPhoto_StreamsWithCacheHeader(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer upstream.Close()

	r := newPhotoRouter(&fakePlaces{photoURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/resources/maps/photo?photoRef=abc&maxWidth=400", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("expected 24h cache header, got %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", got)
	}
	if w.Body.String() != "jpeg-bytes" {
		t.Errorf("expected upstream body streamed through, got %q", w.Body.String())
	}
}

func TestProxyPhoto_ForwardsUpstreamFailureStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad ref", http.StatusForbidden)
	}))
	defer upstream.Close()

	r := newPhotoRouter(&fakePlaces{photoURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/resources/maps/photo?photoRef=bad", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected upstream 403 forwarded, got %d", w.Code)
	}
}
