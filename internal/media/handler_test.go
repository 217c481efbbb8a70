package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type stubPresigner struct {
	err  error
	keys []string
}

func (s *stubPresigner) PresignUpload(ctx context.Context, key string, ttl time.Duration) (*url.URL, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.keys = append(s.keys, key)
	return url.Parse("https://storage.example.com/videos/" + key + "?X-Amz-Signature=abc")
}

func TestUploadAuth(t *testing.T) {
	presigner := &stubPresigner{}
	h := NewHandler(presigner, 15*time.Minute)

	rec := httptest.NewRecorder()
	h.UploadAuth(rec, httptest.NewRequest(http.MethodGet, "/api/upload-auth", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got UploadAuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Method != http.MethodPut {
		t.Errorf("method = %q, want PUT", got.Method)
	}
	if !strings.HasPrefix(got.Key, "uploads/") {
		t.Errorf("key = %q, want uploads/ prefix", got.Key)
	}
	if !strings.Contains(got.UploadURL, "X-Amz-Signature") {
		t.Errorf("uploadUrl = %q, want signed URL", got.UploadURL)
	}
	if got.ExpiresAt.Before(time.Now()) {
		t.Errorf("expiresAt = %v, want a future instant", got.ExpiresAt)
	}
	if len(presigner.keys) != 1 || presigner.keys[0] != got.Key {
		t.Errorf("presigned keys = %v, want the returned key", presigner.keys)
	}
}

func TestUploadAuthPresignFailure(t *testing.T) {
	h := NewHandler(&stubPresigner{err: errors.New("storage down")}, time.Minute)

	rec := httptest.NewRecorder()
	h.UploadAuth(rec, httptest.NewRequest(http.MethodGet, "/api/upload-auth", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "storage down") {
		t.Error("internal error detail leaked to the client")
	}
}

func placeholderRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/placeholder/{width}/{height}", h.Placeholder)
	return r
}

func TestPlaceholder(t *testing.T) {
	r := placeholderRouter(NewHandler(&stubPresigner{}, time.Minute))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/placeholder/400/300", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=31536000") {
		t.Errorf("cache control = %q, want long-lived", cc)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `width="400"`) || !strings.Contains(body, `height="300"`) {
		t.Errorf("svg missing requested dimensions: %s", body)
	}
}

func TestPlaceholderRejectsBadDimensions(t *testing.T) {
	r := placeholderRouter(NewHandler(&stubPresigner{}, time.Minute))

	for _, target := range []string{
		"/api/placeholder/abc/300",
		"/api/placeholder/400/0",
		"/api/placeholder/400/99999",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}
