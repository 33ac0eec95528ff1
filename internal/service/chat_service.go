package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"pdf-explainer-be/internal/constant"
	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/entity"
	"pdf-explainer-be/internal/pkg/logger"
	"pdf-explainer-be/internal/repository/memory"
	"pdf-explainer-be/pkg/progress"
)

// IChatService accepts prompts for the exchange pipeline. The result is
// delivered asynchronously: the consumer appends the assistant message to
// the originating session once the backend answers.
type IChatService interface {
	Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatAck, error)
	Progress(id uuid.UUID) (*dto.ProgressResponse, bool)
}

type chatService struct {
	store     *memory.SessionStore
	pubSub    *gochannel.GoChannel
	topicName string
	progress  *progress.Simulator
	logger    logger.ILogger
}

func NewChatService(
	store *memory.SessionStore,
	pubSub *gochannel.GoChannel,
	topicName string,
	sim *progress.Simulator,
	log logger.ILogger,
) IChatService {
	return &chatService{
		store:     store,
		pubSub:    pubSub,
		topicName: topicName,
		progress:  sim,
		logger:    log,
	}
}

func (s *chatService) Send(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatAck, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, &dto.ValidationError{Message: "Prompt must not be empty"}
	}

	session, found := s.store.Get(req.SessionId)
	if !found {
		return nil, &dto.ValidationError{Message: "Session not found"}
	}

	// Every creation path assigns a backend document code; a session without
	// one has no document to ask about, so it never reaches the bus.
	if session.DocumentCode == 0 {
		return nil, &dto.ValidationError{Message: "Session has no processed document"}
	}

	// One outstanding exchange per session. Losing here is not an error the
	// caller needs to handle; the send is simply dropped, nothing appended.
	if !s.store.BeginExchange(req.SessionId) {
		s.logger.Warn("ChatService", "Send rejected, exchange already pending", map[string]interface{}{
			"session_id": req.SessionId,
		})
		return &dto.SendChatAck{SessionId: req.SessionId, Accepted: false}, nil
	}

	s.store.AppendMessage(req.SessionId, entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Content:   prompt,
		CreatedAt: time.Now(),
	})

	s.progress.Start(req.SessionId.String())

	// Session id goes into the job by value; completion never consults the
	// active pointer.
	job := dto.ExchangeJob{
		SessionId:    req.SessionId,
		DocumentCode: session.DocumentCode,
		Prompt:       prompt,
	}
	payload, err := json.Marshal(job)
	if err == nil {
		err = s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
	}
	if err != nil {
		// The user message is already part of the history, so settle the
		// exchange with the fallback pair instead of leaving it pending.
		s.logger.Error("ChatService", "Failed to dispatch exchange", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		s.store.AppendMessage(req.SessionId, entity.ChatMessage{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleAssistant,
			Content:   constant.FallbackApologyMessage,
			CreatedAt: time.Now(),
		})
		s.store.EndExchange(req.SessionId)
		s.progress.Stop(req.SessionId.String())
		return &dto.SendChatAck{SessionId: req.SessionId, Accepted: true}, nil
	}

	return &dto.SendChatAck{SessionId: req.SessionId, Accepted: true}, nil
}

// Progress backs the polling endpoint; the websocket hub receives the same
// values push-style.
func (s *chatService) Progress(id uuid.UUID) (*dto.ProgressResponse, bool) {
	session, found := s.store.Get(id)
	if !found {
		return nil, false
	}

	percent, _ := s.progress.Percent(id.String())
	return &dto.ProgressResponse{
		SessionId: id,
		Pending:   session.Pending,
		Percent:   percent,
	}, true
}
