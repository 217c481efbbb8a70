// Package media fronts the external upload service boundary: it signs
// direct-to-storage upload URLs and serves placeholder images. File bytes
// never pass through this server.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxPlaceholderDim = 4000

// Presigner signs upload URLs; satisfied by store.MinioStore.
type Presigner interface {
	PresignUpload(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)
}

// Handler holds media HTTP handlers.
type Handler struct {
	presigner Presigner
	ttl       time.Duration
}

func NewHandler(presigner Presigner, ttl time.Duration) *Handler {
	return &Handler{presigner: presigner, ttl: ttl}
}

// UploadAuthResponse carries the short-lived signed parameters the browser
// needs to upload directly to object storage.
type UploadAuthResponse struct {
	UploadURL string    `json:"uploadUrl"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadAuth issues a presigned PUT URL for a fresh object key.
func (h *Handler) UploadAuth(w http.ResponseWriter, r *http.Request) {
	key := "uploads/" + uuid.New().String()
	signed, err := h.presigner.PresignUpload(r.Context(), key, h.ttl)
	if err != nil {
		slog.Error("presign upload", "error", err)
		http.Error(w, `{"error":"failed to authorize upload"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadAuthResponse{
		UploadURL: signed.String(),
		Method:    http.MethodPut,
		Key:       key,
		ExpiresAt: time.Now().Add(h.ttl).UTC(),
	})
}

// Placeholder serves a generated SVG of the requested dimensions. Stateless,
// aggressively cacheable.
func (h *Handler) Placeholder(w http.ResponseWriter, r *http.Request) {
	width, err := parseDimension(chi.URLParam(r, "width"))
	if err != nil {
		http.Error(w, `{"error":"invalid width"}`, http.StatusBadRequest)
		return
	}
	height, err := parseDimension(chi.URLParam(r, "height"))
	if err != nil {
		http.Error(w, `{"error":"invalid height"}`, http.StatusBadRequest)
		return
	}

	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="#374151"/>
  <text x="50%%" y="50%%" text-anchor="middle" dy="0.3em" fill="#9CA3AF" font-family="Arial, sans-serif" font-size="16">%d × %d</text>
</svg>`, width, height, width, height)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	w.Write([]byte(svg))
}

func parseDimension(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > maxPlaceholderDim {
		return 0, fmt.Errorf("dimension out of range: %d", n)
	}
	return n, nil
}
