package video

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/priyanshu14077/Video-La-Vida/internal/models"
)

const titleMaxLen = 50

// Sample is a pre-registered media pair the stub can hand out.
type Sample struct {
	VideoURL     string
	ThumbnailURL string
}

// DefaultSamples are publicly hosted clips that actually resolve.
var DefaultSamples = []Sample{
	{
		VideoURL:     "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4",
		ThumbnailURL: "https://via.placeholder.com/400x300/1a1a1a/ffffff?text=AI+Generated+Video",
	},
	{
		VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		ThumbnailURL: "https://via.placeholder.com/400x300/2a2a2a/ffffff?text=Big+Bunny",
	},
	{
		VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
		ThumbnailURL: "https://via.placeholder.com/400x300/3a3a3a/ffffff?text=Elephants+Dream",
	},
}

// Generator synthesizes fake "AI generated" video descriptors. It picks one
// of its samples uniformly at random and sleeps for a fixed delay to stand in
// for a real inference call. The random source and delay are injected so
// tests can pin the selection and skip the wait.
type Generator struct {
	samples []Sample
	delay   time.Duration

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

func NewGenerator(samples []Sample, rng *rand.Rand, delay time.Duration) *Generator {
	if len(samples) == 0 {
		samples = DefaultSamples
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{samples: samples, rng: rng, delay: delay}
}

// Generate returns a synthesized descriptor for the prompt. It honors
// context cancellation during the simulated processing delay.
func (g *Generator) Generate(ctx context.Context, prompt, style string, duration int) (models.GeneratedVideo, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return models.GeneratedVideo{}, ctx.Err()
		case <-timer.C:
		}
	}

	g.mu.Lock()
	sample := g.samples[g.rng.Intn(len(g.samples))]
	g.mu.Unlock()

	return models.GeneratedVideo{
		ID:           "video_" + uuid.New().String(),
		VideoURL:     sample.VideoURL,
		ThumbnailURL: sample.ThumbnailURL,
		Title:        truncateTitle(prompt),
		Description:  fmt.Sprintf("%q with %s style (%ds duration)", prompt, style, duration),
		Duration:     duration,
		Style:        style,
		Prompt:       prompt,
	}, nil
}

func truncateTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= titleMaxLen {
		return prompt
	}
	return string(runes[:titleMaxLen]) + "..."
}
