package video

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestGeneratePinnedSelection(t *testing.T) {
	samples := []Sample{{VideoURL: "https://cdn/only.mp4", ThumbnailURL: "https://cdn/only.jpg"}}
	g := NewGenerator(samples, rand.New(rand.NewSource(7)), 0)

	got, err := g.Generate(context.Background(), "a whale", "cinematic", 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.VideoURL != samples[0].VideoURL || got.ThumbnailURL != samples[0].ThumbnailURL {
		t.Errorf("selection = %q/%q, want the single registered sample", got.VideoURL, got.ThumbnailURL)
	}
}

func TestGenerateSelectionStaysInCatalog(t *testing.T) {
	g := NewGenerator(nil, rand.New(rand.NewSource(42)), 0)

	urls := map[string]bool{}
	for _, s := range DefaultSamples {
		urls[s.VideoURL] = true
	}
	for i := 0; i < 50; i++ {
		got, err := g.Generate(context.Background(), "prompt", "cinematic", 5)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !urls[got.VideoURL] {
			t.Fatalf("selected %q, not in the sample catalog", got.VideoURL)
		}
	}
}

func TestGenerateTitleTruncation(t *testing.T) {
	g := NewGenerator(nil, rand.New(rand.NewSource(1)), 0)

	long := strings.Repeat("x", 60)
	got, err := g.Generate(context.Background(), long, "cinematic", 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := strings.Repeat("x", 50) + "..."
	if got.Title != want {
		t.Errorf("title = %q, want %q", got.Title, want)
	}

	short := "a calm sunset"
	got, err = g.Generate(context.Background(), short, "cinematic", 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Title != short {
		t.Errorf("title = %q, want prompt unchanged", got.Title)
	}
}

func TestGenerateDescriptionEmbedsInputs(t *testing.T) {
	g := NewGenerator(nil, rand.New(rand.NewSource(1)), 0)

	got, err := g.Generate(context.Background(), "city at night", "noir", 12)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, fragment := range []string{"city at night", "noir", "12s"} {
		if !strings.Contains(got.Description, fragment) {
			t.Errorf("description %q missing %q", got.Description, fragment)
		}
	}
	if got.Prompt != "city at night" || got.Style != "noir" || got.Duration != 12 {
		t.Errorf("echoed fields = %q/%q/%d", got.Prompt, got.Style, got.Duration)
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	g := NewGenerator(nil, rand.New(rand.NewSource(1)), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := g.Generate(ctx, "prompt", "cinematic", 5)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, want immediate return", elapsed)
	}
}
