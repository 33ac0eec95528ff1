package dto

import "github.com/google/uuid"

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Prompt    string    `json:"prompt" validate:"required"`
}

// SendChatAck is returned immediately; the exchange result arrives in the
// session history once the backend call completes. Accepted is false when
// the session already had an outstanding exchange.
type SendChatAck struct {
	SessionId uuid.UUID `json:"session_id"`
	Accepted  bool      `json:"accepted"`
}

type ProgressResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Pending   bool      `json:"pending"`
	Percent   int       `json:"percent"`
}

// ExchangeJob is the watermill payload published per accepted send. The
// session id is captured by value here so the result lands in the
// originating session no matter which session is active by then.
type ExchangeJob struct {
	SessionId    uuid.UUID `json:"session_id"`
	DocumentCode int       `json:"document_code"`
	Prompt       string    `json:"prompt"`
}
