package dto

// UploadRequest carries the already-read multipart upload into the service
// layer.
type UploadRequest struct {
	Filename    string
	ContentType string
	Content     []byte
}
