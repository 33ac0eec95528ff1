package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one document-scoped conversation thread. DocumentCode is
// immutable once set; Messages only ever grows and is mutated exclusively
// through the session store.
type ChatSession struct {
	Id           uuid.UUID
	SourceName   string
	DocumentCode int
	Messages     []ChatMessage
	Pending      bool
	CreatedAt    time.Time
}
