package service

import (
	"context"
	"strings"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/pkg/backend"
	"smart-pdf-assistant/pkg/store"
)

type IChatService interface {
	// SubmitQuery appends the user's message, asks the backend, then appends
	// the reply. Blank text is ignored without touching the session.
	SubmitQuery(ctx context.Context, text string) (store.Session, error)
	Session() store.Session
	History() []store.ChatMessage
}

type chatService struct {
	store   *store.Store
	backend backend.Backend
	logger  logger.ILogger
}

func NewChatService(st *store.Store, be backend.Backend, log logger.ILogger) IChatService {
	return &chatService{
		store:   st,
		backend: be,
		logger:  log,
	}
}

func (s *chatService) SubmitQuery(ctx context.Context, text string) (store.Session, error) {
	if strings.TrimSpace(text) == "" {
		return s.store.Snapshot(), nil
	}

	// Phase 1: optimistic append
	submitted, err := s.store.Dispatch(ctx, store.ChatSubmitted{Text: text})
	if err != nil {
		return submitted, err
	}
	generation := submitted.Generation

	// Phase 2: settle with whatever the backend said
	res := s.backend.Chat(ctx, text)
	switch {
	case res.IsOK():
		return s.store.Dispatch(ctx, store.ChatAnswered{
			Generation: generation,
			Text:       orDefault(res.Payload.Answer, constant.ChatNoAnswerMessage),
		})

	case res.IsHTTPError():
		s.logger.Warn(constant.LogModuleChat, "Chat rejected", map[string]interface{}{
			"status":  res.Status,
			"message": res.Message,
		})
		return s.store.Dispatch(ctx, store.ChatFailed{
			Generation: generation,
			Text:       orDefault(res.Message, constant.ChatFetchErrorMessage),
		})

	default:
		s.logger.Error(constant.LogModuleChat, "Chat transport failure", map[string]interface{}{
			"error": res.Err,
		})
		return s.store.Dispatch(ctx, store.ChatFailed{
			Generation: generation,
			Text:       constant.ServerErrorTryAgain,
		})
	}
}

func (s *chatService) Session() store.Session {
	return s.store.Snapshot()
}

func (s *chatService) History() []store.ChatMessage {
	return s.store.Snapshot().ChatHistory
}
