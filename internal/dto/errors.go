package dto

// ValidationError is a client-side rejection: no backend call was made and
// no state changed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError means the document-processing backend refused or failed the
// upload. No session was created.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

// GenerateError is a failed exchange. It is absorbed into the conversation
// as a fallback message and never propagated to the HTTP caller; the type
// exists for logging and tests.
type GenerateError struct {
	Message string
}

func (e *GenerateError) Error() string {
	return e.Message
}
