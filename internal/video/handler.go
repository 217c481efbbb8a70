package video

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/priyanshu14077/Video-La-Vida/internal/auth"
	"github.com/priyanshu14077/Video-La-Vida/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Store defines the interface for video persistence.
type Store interface {
	CreateVideo(ctx context.Context, v *models.Video) (*models.Video, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
}

// Metrics records domain counters; satisfied by metrics.Collector.
type Metrics interface {
	RecordVideoCreated()
	RecordVideoGenerated()
}

// Handler holds video HTTP handlers.
type Handler struct {
	store     Store
	generator *Generator
	metrics   Metrics
}

func NewHandler(store Store, generator *Generator, metrics Metrics) *Handler {
	return &Handler{store: store, generator: generator, metrics: metrics}
}

// Create validates and persists a video owned by the authenticated caller.
// The video and its transformation are written in a single transaction.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	var req models.CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Description == "" || req.VideoURL == "" || req.ThumbnailURL == "" {
		http.Error(w, `{"error":"title, description, videoUrl, and thumbnailUrl are required"}`, http.StatusBadRequest)
		return
	}

	controls, transformation := req.Resolve()
	if transformation.Height <= 0 || transformation.Width <= 0 {
		http.Error(w, `{"error":"transformation height and width must be positive"}`, http.StatusBadRequest)
		return
	}
	if transformation.Quality < 0 || transformation.Quality > 100 {
		http.Error(w, `{"error":"transformation quality must be between 0 and 100"}`, http.StatusBadRequest)
		return
	}

	video, err := h.store.CreateVideo(r.Context(), &models.Video{
		Title:          req.Title,
		Description:    req.Description,
		VideoURL:       req.VideoURL,
		ThumbnailURL:   req.ThumbnailURL,
		Controls:       controls,
		Transformation: transformation,
		UserID:         userID,
	})
	if err != nil {
		slog.Error("create video", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to create video"}`, http.StatusInternalServerError)
		return
	}

	h.metrics.RecordVideoCreated()
	writeJSON(w, http.StatusCreated, video)
}

// List returns every video joined with its owner and transformation,
// newest first. Listing is public.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.store.ListVideos(r.Context())
	if err != nil {
		slog.Error("list videos", "error", err)
		http.Error(w, `{"error":"failed to fetch videos"}`, http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}
	writeJSON(w, http.StatusOK, videos)
}

// Generate synthesizes a fake generation result. Nothing is persisted; the
// client submits the descriptor through Create if the user keeps it.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		http.Error(w, `{"error":"prompt is required"}`, http.StatusBadRequest)
		return
	}
	if req.Style == "" {
		req.Style = "cinematic"
	}
	if req.Duration <= 0 {
		req.Duration = 5
	}

	result, err := h.generator.Generate(r.Context(), req.Prompt, req.Style, req.Duration)
	if err != nil {
		// Caller hung up during the simulated processing delay.
		return
	}

	h.metrics.RecordVideoGenerated()
	writeJSON(w, http.StatusOK, models.GenerateResponse{Success: true, Video: result})
}
