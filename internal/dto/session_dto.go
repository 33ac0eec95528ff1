package dto

import (
	"time"

	"github.com/google/uuid"

	"pdf-explainer-be/pkg/video"
)

type SessionSummaryResponse struct {
	Id           uuid.UUID `json:"id"`
	SourceName   string    `json:"source_name"`
	DocumentCode int       `json:"document_code"`
	Pending      bool      `json:"pending"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionListResponse struct {
	Sessions []SessionSummaryResponse `json:"sessions"`
	ActiveId *uuid.UUID               `json:"active_id,omitempty"`
}

type MessageResponse struct {
	Id        uuid.UUID     `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Video     *video.Source `json:"video,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type SessionDetailResponse struct {
	Id           uuid.UUID         `json:"id"`
	SourceName   string            `json:"source_name"`
	DocumentCode int               `json:"document_code"`
	Pending      bool              `json:"pending"`
	CreatedAt    time.Time         `json:"created_at"`
	Messages     []MessageResponse `json:"messages"`
}
