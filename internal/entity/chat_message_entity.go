package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once appended. HasVideo is the explicit
// discriminant: VideoRef is only meaningful when it is true.
type ChatMessage struct {
	Id        uuid.UUID
	Role      string
	Content   string
	HasVideo  bool
	VideoRef  string
	CreatedAt time.Time
}
