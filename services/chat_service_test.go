package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"synapse_server/models"

	"go.uber.org/zap"
)

// chatStore combines the assistant-channel and introduction stubs so one
// store backs both the chat entry point and the matchmaker.
type chatStore struct {
	stubMessenger
}

func (s *chatStore) RecentAssistantChannel(_ context.Context, _ string, limit int) ([]models.Message, error) {
	var recent []models.Message
	for i := len(s.channel) - 1; i >= 0; i-- {
		if limit > 0 && len(recent) == limit {
			break
		}
		recent = append(recent, models.Message{
			Content:            s.channel[i].content,
			IsAssistantMessage: s.channel[i].assistantOrigin,
		})
	}
	return recent, nil
}

func TestChatSearchIntentRunsMatchmaking(t *testing.T) {
	// canonical fixture candidate scores 1.0 without an oracle call;
	// the other candidate degrades to 0 because the oracle is down
	dir := &stubDirectory{assistants: []models.Assistant{
		{UserID: "user-a", Name: "Aria", Personality: "professional", Context: "Hiring a developer"},
		{UserID: "user-b", Name: "Bolt", Context: CanonicalCandidateContext},
		{UserID: "user-c", Name: "Cleo", Context: "Watercolor painting"},
	}}
	matches := &stubMatches{}
	store := &chatStore{}
	oracle := &CompatibilityOracle{Generator: &fakeGenerator{err: errors.New("oracle down")}, Logger: zap.NewNop()}

	matchmaker := &MatchmakerService{
		Assistants: dir,
		Matches:    matches,
		Messages:   store,
		Oracle:     oracle,
		Logger:     zap.NewNop(),
	}
	cs := &ChatService{
		Assistants: dir,
		Messages:   store,
		Classifier: KeywordIntentClassifier{},
		Matchmaker: matchmaker,
		Responder:  &ResponderService{Messages: store, Generator: &fakeGenerator{}, Logger: zap.NewNop()},
		Logger:     zap.NewNop(),
	}

	query := "I'm looking for a developer"
	if err := cs.HandleMessage(context.Background(), "user-a", query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches.calls) != 1 {
		t.Fatalf("got %d match rows, want 1", len(matches.calls))
	}
	call := matches.calls[0]
	if call.user1ID != "user-a" || call.user2ID != "user-b" || call.score != 1.0 {
		t.Fatalf("unexpected match: %+v", call)
	}

	if len(store.intros) != 2 {
		t.Fatalf("got %d introduction messages, want 2", len(store.intros))
	}

	// channel holds the recorded inbound message plus the summary
	if len(store.channel) != 2 {
		t.Fatalf("got %d assistant-channel messages, want 2", len(store.channel))
	}
	inbound := store.channel[0]
	if inbound.content != query || inbound.assistantOrigin {
		t.Fatalf("inbound message not recorded as human-origin: %+v", inbound)
	}
	summary := store.channel[1]
	if !summary.assistantOrigin || !strings.Contains(summary.content, "1 strong match") {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.Contains(summary.content, query) {
		t.Fatalf("summary does not reference the query: %q", summary.content)
	}
}

func TestChatPlainMessageGetsReply(t *testing.T) {
	dir := &stubDirectory{assistants: []models.Assistant{
		{UserID: "user-a", Name: "Aria", Personality: "friendly", Context: "career advice"},
	}}
	store := &chatStore{}
	gen := &recordingChatGenerator{reply: "It's sunny where the servers live."}

	cs := &ChatService{
		Assistants: dir,
		Messages:   store,
		Classifier: KeywordIntentClassifier{},
		Matchmaker: &MatchmakerService{Assistants: dir, Matches: &stubMatches{}, Messages: store, Oracle: &stubScorer{}, Logger: zap.NewNop()},
		Responder:  &ResponderService{Messages: store, Generator: gen, Logger: zap.NewNop()},
		Logger:     zap.NewNop(),
	}

	if err := cs.HandleMessage(context.Background(), "user-a", "How is the weather?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.message != "How is the weather?" {
		t.Fatalf("oracle not invoked with the inbound message, got %q", gen.message)
	}
	if len(gen.history) != 1 {
		// the recorded inbound message is the only prior channel turn
		t.Fatalf("got %d history turns, want 1", len(gen.history))
	}

	if len(store.channel) != 2 {
		t.Fatalf("got %d channel messages, want inbound plus reply", len(store.channel))
	}
	reply := store.channel[1]
	if reply.content != "It's sunny where the servers live." || !reply.assistantOrigin {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestChatWithoutAssistantFails(t *testing.T) {
	store := &chatStore{}
	cs := &ChatService{
		Assistants: &stubDirectory{},
		Messages:   store,
		Classifier: KeywordIntentClassifier{},
		Logger:     zap.NewNop(),
	}

	err := cs.HandleMessage(context.Background(), "user-a", "hello")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
