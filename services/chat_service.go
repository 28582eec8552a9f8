package services

import (
	"context"
	"fmt"

	"synapse_server/models"

	"go.uber.org/zap"
)

type assistantDirectory interface {
	GetAssistant(ctx context.Context, userID string) (*models.Assistant, error)
	TouchLastMessage(ctx context.Context, userID string) error
}

type channelAppender interface {
	AppendAssistantChannel(ctx context.Context, userID, content string, assistantOrigin bool) (*models.Message, error)
}

type searchRunner interface {
	Run(ctx context.Context, assistant *models.Assistant, query string) error
}

type chatResponder interface {
	Respond(ctx context.Context, assistant *models.Assistant, message string) error
}

// ChatService is the assistant-channel entry point: every inbound message
// is recorded, stamped on the assistant, classified, and dispatched to
// either matchmaking or the conversational responder.
type ChatService struct {
	Assistants assistantDirectory
	Messages   channelAppender
	Classifier SearchIntentClassifier
	Matchmaker searchRunner
	Responder  chatResponder
	Logger     *zap.Logger
}

// HandleMessage processes one inbound assistant-channel message for a user
func (cs *ChatService) HandleMessage(ctx context.Context, userID, message string) error {
	if _, err := cs.Messages.AppendAssistantChannel(ctx, userID, message, false); err != nil {
		return fmt.Errorf("failed to record inbound message: %w", err)
	}

	assistant, err := cs.Assistants.GetAssistant(ctx, userID)
	if err != nil {
		return fmt.Errorf("assistant not set up for user %s: %w", userID, err)
	}

	if err := cs.Assistants.TouchLastMessage(ctx, userID); err != nil {
		return err
	}

	if cs.Classifier.IsSearchIntent(message) {
		cs.Logger.Debug("search intent detected", zap.String("user_id", userID))
		return cs.Matchmaker.Run(ctx, assistant, message)
	}

	return cs.Responder.Respond(ctx, assistant, message)
}
