package services

import (
	"context"
	"fmt"
	"time"

	"synapse_server/models"

	"go.uber.org/zap"
)

// HistoryWindow bounds how many prior assistant-channel turns are handed
// to the chat oracle.
const HistoryWindow = 10

// ReplyMaxOutputTokens caps the oracle's reply length
const ReplyMaxOutputTokens = 200

// FallbackReply is appended whenever the chat oracle fails; the user
// never sees a raw transport error on the assistant channel.
const FallbackReply = "Sorry, I encountered an error trying to respond. Please try again."

type assistantChannelStore interface {
	RecentAssistantChannel(ctx context.Context, userID string, limit int) ([]models.Message, error)
	AppendAssistantChannel(ctx context.Context, userID, content string, assistantOrigin bool) (*models.Message, error)
}

// ResponderService answers non-search assistant-channel messages with a
// persona-grounded chat completion.
type ResponderService struct {
	Messages  assistantChannelStore
	Generator ContentGenerator
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Respond reconstructs the recent self-chat history, asks the oracle for
// a reply in the assistant's voice, and appends it. Any oracle failure
// appends the fixed fallback instead.
func (rs *ResponderService) Respond(ctx context.Context, assistant *models.Assistant, message string) error {
	recent, err := rs.Messages.RecentAssistantChannel(ctx, assistant.UserID, HistoryWindow)
	if err != nil {
		return fmt.Errorf("failed to load chat history: %w", err)
	}

	// recent is newest first; the oracle wants chronological order
	history := make([]ChatTurn, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		role := ChatRoleUser
		if recent[i].IsAssistantMessage {
			role = ChatRoleModel
		}
		history = append(history, ChatTurn{Role: role, Text: recent[i].Content})
	}

	instruction := fmt.Sprintf(
		"You are %s. Your personality is %s. You are helping the user with: %s. Continue the conversation.",
		assistant.Name, assistant.Personality, assistant.Context)

	reply, err := rs.generate(ctx, instruction, history, message)
	if err != nil {
		rs.Logger.Warn("chat oracle call failed",
			zap.String("user_id", assistant.UserID),
			zap.Error(err))
		reply = FallbackReply
	}

	if _, err := rs.Messages.AppendAssistantChannel(ctx, assistant.UserID, reply, true); err != nil {
		return fmt.Errorf("failed to append assistant reply: %w", err)
	}
	return nil
}

func (rs *ResponderService) generate(ctx context.Context, instruction string, history []ChatTurn, message string) (string, error) {
	if rs.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.Timeout)
		defer cancel()
	}
	return rs.Generator.GenerateChat(ctx, instruction, history, message, ReplyMaxOutputTokens)
}
