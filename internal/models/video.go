package models

import "time"

// Transformation defaults applied independently for each omitted field.
const (
	DefaultTransformationHeight  = 1920
	DefaultTransformationWidth   = 1080
	DefaultTransformationQuality = 100
)

// Transformation is the display geometry stored one-to-one with a video.
type Transformation struct {
	Height  int `json:"height"`
	Width   int `json:"width"`
	Quality int `json:"quality"`
}

// Video is a shareable media item joined with its owner and transformation.
type Video struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	VideoURL       string         `json:"videoUrl"`
	ThumbnailURL   string         `json:"thumbnailUrl"`
	Controls       bool           `json:"controls"`
	Transformation Transformation `json:"transformation"`
	UserID         string         `json:"-"`
	User           UserRef        `json:"user"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// TransformationParams carries optional transformation overrides; nil fields
// fall back to the defaults above.
type TransformationParams struct {
	Height  *int `json:"height"`
	Width   *int `json:"width"`
	Quality *int `json:"quality"`
}

// CreateVideoRequest is the JSON body for POST /api/videos.
type CreateVideoRequest struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	VideoURL       string                `json:"videoUrl"`
	ThumbnailURL   string                `json:"thumbnailUrl"`
	Controls       *bool                 `json:"controls"`
	Transformation *TransformationParams `json:"transformation"`
}

// Resolve applies the defaulting policy: controls defaults to true and each
// transformation field defaults independently of its siblings.
func (r *CreateVideoRequest) Resolve() (controls bool, t Transformation) {
	controls = true
	if r.Controls != nil {
		controls = *r.Controls
	}
	t = Transformation{
		Height:  DefaultTransformationHeight,
		Width:   DefaultTransformationWidth,
		Quality: DefaultTransformationQuality,
	}
	if r.Transformation != nil {
		if r.Transformation.Height != nil {
			t.Height = *r.Transformation.Height
		}
		if r.Transformation.Width != nil {
			t.Width = *r.Transformation.Width
		}
		if r.Transformation.Quality != nil {
			t.Quality = *r.Transformation.Quality
		}
	}
	return controls, t
}

// GenerateRequest is the JSON body for POST /api/generate-video.
type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Style    string `json:"style"`
	Duration int    `json:"duration"`
}

// GeneratedVideo is the synthesized descriptor returned by the generation
// stub. It is not persisted; the client submits it to POST /api/videos.
type GeneratedVideo struct {
	ID           string `json:"id"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Duration     int    `json:"duration"`
	Style        string `json:"style"`
	Prompt       string `json:"prompt"`
}

// GenerateResponse wraps the stub result.
type GenerateResponse struct {
	Success bool           `json:"success"`
	Video   GeneratedVideo `json:"video"`
}
