package explainer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Field name the Flask-style backend expects the document under.
const uploadFieldName = "pdf_filename"

type HTTPProvider struct {
	client  *resty.Client
	baseURL string
}

var _ Provider = &HTTPProvider{}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPProvider{
		client:  client,
		baseURL: baseURL,
	}
}

// --- Wire types (internal to this package) ---

type uploadResponse struct {
	Message  string `json:"message"`
	Code     int    `json:"code"`
	Filename string `json:"filename"`
}

type generateRequest struct {
	Code   int    `json:"code"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	VideoID     string `json:"video_id"`
	Explanation string `json:"explanation"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Interface Implementation ---

func (p *HTTPProvider) Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	var out uploadResponse
	var failure errorResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetFileReader(uploadFieldName, filename, bytes.NewReader(content)).
		SetResult(&out).
		SetError(&failure).
		Post("/upload")
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}

	if resp.IsError() {
		return nil, &BackendError{Status: resp.StatusCode(), Message: failure.Error}
	}

	return &UploadResult{
		Code:     out.Code,
		Filename: out.Filename,
		Message:  out.Message,
	}, nil
}

func (p *HTTPProvider) Generate(ctx context.Context, code int, prompt string) (*GenerateResult, error) {
	var out generateResponse
	var failure errorResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(generateRequest{Code: code, Prompt: prompt}).
		SetResult(&out).
		SetError(&failure).
		Post("/generate")
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}

	if resp.IsError() {
		return nil, &BackendError{Status: resp.StatusCode(), Message: failure.Error}
	}

	// A success payload without a video reference is malformed per the
	// contract and treated the same as a failed call.
	if out.VideoID == "" {
		return nil, &BackendError{Status: resp.StatusCode(), Message: "malformed generate payload: missing video_id"}
	}

	return &GenerateResult{
		VideoID:     out.VideoID,
		Explanation: out.Explanation,
	}, nil
}
