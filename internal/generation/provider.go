package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/ai-studio/backend/internal/models"
)

// Request carries the prompt and parameters of one generation call.
type Request struct {
	Type           string
	Prompt         string
	NegativePrompt string
	Model          string
	Size           string
	Steps          int
	CFGScale       float64
	Duration       string
	Style          string
}

// Result is what a provider hands back: one or more media URLs plus a
// thumbnail.
type Result struct {
	URLs         []string
	ThumbnailURL string
}

// Provider produces media for a generation request. A real implementation
// would call an external generation API; MockProvider stands in for it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

const sampleVideoURL = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"

// MockProvider simulates generation with a fixed delay and static sample
// media. Once a simulation starts it always runs to completion; there is no
// cancellation.
type MockProvider struct {
	ImageDelay time.Duration
	VideoDelay time.Duration
	ImageCount int
}

var _ Provider = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{
		ImageDelay: 3 * time.Second,
		VideoDelay: 5 * time.Second,
		ImageCount: 4,
	}
}

func (p *MockProvider) Generate(ctx context.Context, req Request) (*Result, error) {
	switch req.Type {
	case models.GenerationTypeImage:
		time.Sleep(p.ImageDelay)
		urls := make([]string, p.ImageCount)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://picsum.photos/512/512?random=%d", i+1)
		}
		return &Result{URLs: urls, ThumbnailURL: urls[0]}, nil
	case models.GenerationTypeVideo:
		time.Sleep(p.VideoDelay)
		return &Result{
			URLs:         []string{sampleVideoURL},
			ThumbnailURL: "https://picsum.photos/300/200?random=video",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported generation type %q", req.Type)
	}
}
