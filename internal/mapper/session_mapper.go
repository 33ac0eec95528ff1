package mapper

import (
	"pdf-explainer-be/internal/constant"
	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/entity"
	"pdf-explainer-be/pkg/video"
)

func ToSessionSummaryResponse(session *entity.ChatSession) dto.SessionSummaryResponse {
	return dto.SessionSummaryResponse{
		Id:           session.Id,
		SourceName:   session.SourceName,
		DocumentCode: session.DocumentCode,
		Pending:      session.Pending,
		CreatedAt:    session.CreatedAt,
	}
}

func ToSessionDetailResponse(session *entity.ChatSession) *dto.SessionDetailResponse {
	messages := make([]dto.MessageResponse, 0, len(session.Messages))
	for i := range session.Messages {
		messages = append(messages, ToMessageResponse(&session.Messages[i]))
	}

	return &dto.SessionDetailResponse{
		Id:           session.Id,
		SourceName:   session.SourceName,
		DocumentCode: session.DocumentCode,
		Pending:      session.Pending,
		CreatedAt:    session.CreatedAt,
		Messages:     messages,
	}
}

// ToMessageResponse resolves the video reference into a playback descriptor.
// Only assistant messages ever carry one.
func ToMessageResponse(msg *entity.ChatMessage) dto.MessageResponse {
	out := dto.MessageResponse{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}

	if msg.Role == constant.ChatMessageRoleAssistant && msg.HasVideo {
		src := video.Resolve(msg.VideoRef)
		out.Video = &src
	}
	return out
}
