package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"synapse_server/models"

	"go.uber.org/zap"
)

type stubChannelStore struct {
	recent   []models.Message
	appended []recordedMessage
}

func (s *stubChannelStore) RecentAssistantChannel(_ context.Context, _ string, limit int) ([]models.Message, error) {
	if limit > 0 && len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubChannelStore) AppendAssistantChannel(_ context.Context, userID, content string, assistantOrigin bool) (*models.Message, error) {
	s.appended = append(s.appended, recordedMessage{senderID: userID, receiverID: userID, content: content, assistantOrigin: assistantOrigin})
	return &models.Message{}, nil
}

type recordingChatGenerator struct {
	instruction string
	history     []ChatTurn
	message     string
	maxTokens   int32
	reply       string
	err         error
}

func (r *recordingChatGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return "", errors.New("not a chat call")
}

func (r *recordingChatGenerator) GenerateChat(_ context.Context, instruction string, history []ChatTurn, message string, maxOutputTokens int32) (string, error) {
	r.instruction = instruction
	r.history = history
	r.message = message
	r.maxTokens = maxOutputTokens
	if r.err != nil {
		return "", r.err
	}
	return r.reply, nil
}

func testAssistant() *models.Assistant {
	return &models.Assistant{
		UserID:      "user-a",
		Name:        "Aria",
		Personality: "friendly",
		Context:     "career advice",
	}
}

func TestResponderBoundsAndOrdersHistory(t *testing.T) {
	// the store hands out newest first; the oracle must see chronological
	// order, capped at the history window
	store := &stubChannelStore{}
	for i := 0; i < 15; i++ {
		origin := i%2 == 0
		store.recent = append(store.recent, models.Message{
			Content:            fmt.Sprintf("turn-%d", 15-i),
			IsAssistantMessage: origin,
		})
	}

	gen := &recordingChatGenerator{reply: "sure thing"}
	rs := &ResponderService{Messages: store, Generator: gen, Logger: zap.NewNop()}

	if err := rs.Respond(context.Background(), testAssistant(), "How is the weather?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.history) != HistoryWindow {
		t.Fatalf("got %d history turns, want %d", len(gen.history), HistoryWindow)
	}
	// store order was newest first, so the last handed turn is the newest
	if gen.history[len(gen.history)-1].Text != "turn-15" {
		t.Fatalf("history not chronological, last turn %q", gen.history[len(gen.history)-1].Text)
	}
	// recent[9] is a human turn, recent[8] assistant-origin; after the
	// reversal they are the first two handed to the oracle
	if gen.history[0].Role != ChatRoleUser {
		t.Fatalf("human turn mapped to role %q, want %q", gen.history[0].Role, ChatRoleUser)
	}
	if gen.history[1].Role != ChatRoleModel {
		t.Fatalf("assistant-origin turn mapped to role %q, want %q", gen.history[1].Role, ChatRoleModel)
	}
	if gen.maxTokens != ReplyMaxOutputTokens {
		t.Fatalf("got max tokens %d, want %d", gen.maxTokens, ReplyMaxOutputTokens)
	}
	if gen.message != "How is the weather?" {
		t.Fatalf("unexpected message %q", gen.message)
	}
}

func TestResponderGroundsPersona(t *testing.T) {
	store := &stubChannelStore{}
	gen := &recordingChatGenerator{reply: "hello"}
	rs := &ResponderService{Messages: store, Generator: gen, Logger: zap.NewNop()}

	if err := rs.Respond(context.Background(), testAssistant(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "You are Aria. Your personality is friendly. You are helping the user with: career advice. Continue the conversation."
	if gen.instruction != want {
		t.Fatalf("instruction %q, want %q", gen.instruction, want)
	}

	if len(store.appended) != 1 {
		t.Fatalf("got %d appended messages, want 1", len(store.appended))
	}
	reply := store.appended[0]
	if reply.content != "hello" || !reply.assistantOrigin {
		t.Fatalf("unexpected reply append: %+v", reply)
	}
}

func TestResponderFallsBackOnOracleFailure(t *testing.T) {
	store := &stubChannelStore{}
	gen := &recordingChatGenerator{err: errors.New("oracle down")}
	rs := &ResponderService{Messages: store, Generator: gen, Logger: zap.NewNop()}

	if err := rs.Respond(context.Background(), testAssistant(), "hi"); err != nil {
		t.Fatalf("oracle failure must not surface, got %v", err)
	}

	if len(store.appended) != 1 {
		t.Fatalf("got %d appended messages, want 1", len(store.appended))
	}
	reply := store.appended[0]
	if reply.content != FallbackReply {
		t.Fatalf("got reply %q, want fallback", reply.content)
	}
	if !reply.assistantOrigin {
		t.Fatal("fallback must be assistant-origin")
	}
}
