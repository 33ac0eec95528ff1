package explainer

import (
	"context"
	"fmt"
)

// UploadResult is the document-processing backend's answer to an upload.
type UploadResult struct {
	Code     int
	Filename string
	Message  string
}

// GenerateResult is one explanation produced for a prompt. VideoID is either
// a remote host video identifier or a local media base name; classification
// is the video resolver's job, not this package's.
type GenerateResult struct {
	VideoID     string
	Explanation string
}

// Provider defines the contract for the document-processing and
// video-generation backend.
type Provider interface {
	// Upload submits a document and returns its processing code.
	Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error)

	// Generate asks for an explanation of prompt scoped to the document
	// identified by code.
	Generate(ctx context.Context, code int, prompt string) (*GenerateResult, error)
}

// BackendError carries the backend-supplied failure message, when it sent one.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}
