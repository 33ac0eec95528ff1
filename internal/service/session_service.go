package service

import (
	"github.com/google/uuid"

	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/mapper"
	"pdf-explainer-be/internal/pkg/logger"
	"pdf-explainer-be/internal/repository/memory"
)

// ISessionService exposes the session collection to the transport layer.
type ISessionService interface {
	List() *dto.SessionListResponse
	Show(id uuid.UUID) (*dto.SessionDetailResponse, bool)
	Select(id uuid.UUID) bool
	Delete(id uuid.UUID) bool
}

type sessionService struct {
	store  *memory.SessionStore
	logger logger.ILogger
}

func NewSessionService(store *memory.SessionStore, log logger.ILogger) ISessionService {
	return &sessionService{
		store:  store,
		logger: log,
	}
}

func (s *sessionService) List() *dto.SessionListResponse {
	sessions := s.store.List()

	out := &dto.SessionListResponse{
		Sessions: make([]dto.SessionSummaryResponse, 0, len(sessions)),
	}
	for _, session := range sessions {
		out.Sessions = append(out.Sessions, mapper.ToSessionSummaryResponse(session))
	}
	if active, ok := s.store.ActiveID(); ok {
		out.ActiveId = &active
	}
	return out
}

func (s *sessionService) Show(id uuid.UUID) (*dto.SessionDetailResponse, bool) {
	session, found := s.store.Get(id)
	if !found {
		return nil, false
	}
	return mapper.ToSessionDetailResponse(session), true
}

func (s *sessionService) Select(id uuid.UUID) bool {
	return s.store.Select(id)
}

func (s *sessionService) Delete(id uuid.UUID) bool {
	deleted := s.store.Delete(id)
	if deleted {
		s.logger.Info("SessionService", "Session deleted", map[string]interface{}{
			"session_id": id,
		})
	}
	return deleted
}
