package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdf-explainer-be/internal/constant"
	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/entity"
	"pdf-explainer-be/internal/mapper"
	"pdf-explainer-be/internal/pkg/logger"
	"pdf-explainer-be/internal/repository/memory"
	"pdf-explainer-be/pkg/explainer"
)

const acceptedContentType = "application/pdf"

// IUploadService is the upload-to-session transition: a valid document goes
// to the processing backend and, on success, becomes a new active session.
type IUploadService interface {
	Submit(ctx context.Context, req *dto.UploadRequest) (*dto.SessionDetailResponse, error)
}

type uploadService struct {
	provider explainer.Provider
	store    *memory.SessionStore
	logger   logger.ILogger
}

func NewUploadService(provider explainer.Provider, store *memory.SessionStore, log logger.ILogger) IUploadService {
	return &uploadService{
		provider: provider,
		store:    store,
		logger:   log,
	}
}

func (s *uploadService) Submit(ctx context.Context, req *dto.UploadRequest) (*dto.SessionDetailResponse, error) {
	// Media-type gate; rejected files never reach the network.
	if err := validateUpload(req); err != nil {
		return nil, err
	}

	result, err := s.provider.Upload(ctx, req.Filename, req.Content)
	if err != nil {
		s.logger.Error("UploadService", "Backend upload failed", map[string]interface{}{
			"filename": req.Filename,
			"error":    err.Error(),
		})
		return nil, toUploadError(err)
	}

	sourceName := result.Filename
	if sourceName == "" {
		sourceName = req.Filename
	}

	now := time.Now()
	session := &entity.ChatSession{
		Id:           uuid.New(),
		SourceName:   sourceName,
		DocumentCode: result.Code,
		CreatedAt:    now,
		Messages: []entity.ChatMessage{
			{
				Id:        uuid.New(),
				Role:      constant.ChatMessageRoleAssistant,
				Content:   fmt.Sprintf(constant.WelcomeMessageTemplate, sourceName, result.Code),
				CreatedAt: now,
			},
		},
	}

	// Registers the session and makes it active in one step.
	s.store.Create(session)

	s.logger.Info("UploadService", "Session created", map[string]interface{}{
		"session_id":    session.Id,
		"document_code": session.DocumentCode,
	})

	return mapper.ToSessionDetailResponse(session), nil
}

func validateUpload(req *dto.UploadRequest) error {
	if !strings.HasSuffix(strings.ToLower(req.Filename), ".pdf") {
		return &dto.ValidationError{Message: "File must be a PDF"}
	}
	if req.ContentType != "" && !strings.HasPrefix(req.ContentType, acceptedContentType) {
		return &dto.ValidationError{Message: "File must be a PDF"}
	}
	if len(req.Content) == 0 {
		return &dto.ValidationError{Message: "File is empty"}
	}
	return nil
}

// toUploadError keeps the backend-supplied message when there is one and
// hides transport noise behind a generic line otherwise.
func toUploadError(err error) error {
	var backendErr *explainer.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return &dto.UploadError{Message: backendErr.Message}
	}
	return &dto.UploadError{Message: "An error occurred while uploading the file"}
}
