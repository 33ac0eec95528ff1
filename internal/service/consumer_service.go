package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"pdf-explainer-be/internal/constant"
	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/entity"
	"pdf-explainer-be/internal/pkg/logger"
	"pdf-explainer-be/internal/repository/memory"
	"pdf-explainer-be/pkg/explainer"
	"pdf-explainer-be/pkg/progress"
)

// IConsumerService drains exchange jobs off the in-process bus: one backend
// generate call per job, result appended to the job's session.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	provider      explainer.Provider
	store         *memory.SessionStore
	progress      *progress.Simulator
	dispatchDelay time.Duration
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	provider explainer.Provider,
	store *memory.SessionStore,
	sim *progress.Simulator,
	dispatchDelay time.Duration,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		provider:      provider,
		store:         store,
		progress:      sim,
		dispatchDelay: dispatchDelay,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var job dto.ExchangeJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal exchange job", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.dispatchDelay > 0 {
		select {
		case <-time.After(cs.dispatchDelay):
		case <-ctx.Done():
		}
	}

	reply := cs.generateReply(ctx, &job)

	// Bound to the originating session regardless of what is active now.
	if !cs.store.AppendMessage(job.SessionId, reply) {
		cs.logger.Warn("ConsumerService", "Session gone before exchange finished", map[string]interface{}{
			"session_id": job.SessionId,
		})
	}
	cs.store.EndExchange(job.SessionId)
	cs.progress.Stop(job.SessionId.String())

	msg.Ack()
}

func (cs *consumerService) generateReply(ctx context.Context, job *dto.ExchangeJob) entity.ChatMessage {
	result, err := cs.provider.Generate(ctx, job.DocumentCode, job.Prompt)
	if err != nil {
		genErr := &dto.GenerateError{Message: err.Error()}
		cs.logger.Error("ConsumerService", "Generate call failed", map[string]interface{}{
			"session_id":    job.SessionId,
			"document_code": job.DocumentCode,
			"error":         genErr.Error(),
		})
		// Absorbed into the conversation; the session stays usable.
		return entity.ChatMessage{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleAssistant,
			Content:   constant.FallbackApologyMessage,
			CreatedAt: time.Now(),
		}
	}

	content := result.Explanation
	if content == "" {
		content = constant.DefaultExplanationMessage
	}

	return entity.ChatMessage{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleAssistant,
		Content:   content,
		HasVideo:  true,
		VideoRef:  result.VideoID,
		CreatedAt: time.Now(),
	}
}
