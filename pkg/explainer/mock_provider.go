package explainer

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Well-known 3Blue1Brown video ids used by the demo backend.
var demoVideoIDs = []string{
	"sULa9Lc4pck",
	"QYg3VQh3tDs",
	"aircAruvnKk",
	"fNk_zzaMoSs",
	"spUNpyF58BY",
	"bBC-nXj3Ng4",
	"zwAD6dRSVyI",
	"k7RM-ot2NWY",
}

// MockProvider answers without a real backend. The random source is injected
// so a test can seed it and get a deterministic video pick; document codes
// are sequential for the same reason.
type MockProvider struct {
	mu       sync.Mutex
	rng      *rand.Rand
	nextCode int
}

var _ Provider = &MockProvider{}

func NewMockProvider(rng *rand.Rand) *MockProvider {
	return &MockProvider{
		rng:      rng,
		nextCode: 1,
	}
}

func (p *MockProvider) Upload(_ context.Context, filename string, _ []byte) (*UploadResult, error) {
	p.mu.Lock()
	code := p.nextCode
	p.nextCode++
	p.mu.Unlock()

	return &UploadResult{
		Code:     code,
		Filename: filename,
		Message:  "PDF uploaded successfully",
	}, nil
}

func (p *MockProvider) Generate(_ context.Context, _ int, prompt string) (*GenerateResult, error) {
	p.mu.Lock()
	videoID := demoVideoIDs[p.rng.Intn(len(demoVideoIDs))]
	p.mu.Unlock()

	return &GenerateResult{
		VideoID:     videoID,
		Explanation: fmt.Sprintf("Here's an explanation inspired by 3Blue1Brown:\n\nLet's explore %q together!", prompt),
	}, nil
}
