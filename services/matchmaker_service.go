package services

import (
	"context"
	"fmt"

	"synapse_server/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MatchScoreThreshold is the minimum compatibility score that turns a
// scored candidate into a match.
const MatchScoreThreshold = 0.85

const defaultFanoutLimit = 8

type candidateDirectory interface {
	ListOtherAssistants(ctx context.Context, userID string) ([]models.Assistant, error)
}

type matchUpserter interface {
	UpsertMatch(ctx context.Context, user1ID, user2ID string, score float64) (*models.Match, error)
}

type introMessenger interface {
	AppendIntroduction(ctx context.Context, senderID, receiverID, content string) (*models.Message, error)
	AppendAssistantChannel(ctx context.Context, userID, content string, assistantOrigin bool) (*models.Message, error)
}

type compatibilityScorer interface {
	Score(ctx context.Context, query string, candidate models.Assistant) float64
}

// MatchmakerService fans a search query out across every other user's
// assistant, filters by score, and seeds a conversation per accepted
// match. Each accepted candidate's effects (match row plus two
// introduction messages) are an independent unit; partial completion
// across candidates is an accepted outcome.
type MatchmakerService struct {
	Assistants  candidateDirectory
	Matches     matchUpserter
	Messages    introMessenger
	Oracle      compatibilityScorer
	FanoutLimit int
	Logger      *zap.Logger
}

type scoredCandidate struct {
	assistant models.Assistant
	score     float64
}

// Run executes one search: score all candidates, create matches and
// introductions above the threshold, and report the outcome back on the
// initiator's assistant channel.
func (mm *MatchmakerService) Run(ctx context.Context, assistant *models.Assistant, query string) error {
	candidates, err := mm.Assistants.ListOtherAssistants(ctx, assistant.UserID)
	if err != nil {
		return err
	}

	scored := mm.scoreCandidates(ctx, query, candidates)

	var accepted []scoredCandidate
	for _, sc := range scored {
		if sc.score >= MatchScoreThreshold {
			accepted = append(accepted, sc)
		}
	}

	mm.Logger.Info("matchmaking scored candidates",
		zap.String("user_id", assistant.UserID),
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(accepted)))

	created := 0
	for _, match := range accepted {
		if err := mm.createMatch(ctx, assistant, match, query); err != nil {
			// no cross-candidate rollback: log and keep going
			mm.Logger.Error("failed to create match",
				zap.String("candidate_user_id", match.assistant.UserID),
				zap.Error(err))
			continue
		}
		created++
	}

	summary := summaryMessage(created, query)
	if _, err := mm.Messages.AppendAssistantChannel(ctx, assistant.UserID, summary, true); err != nil {
		return fmt.Errorf("failed to append match summary: %w", err)
	}
	return nil
}

// scoreCandidates obtains a score for every candidate concurrently,
// bounded by FanoutLimit, and waits for all of them before returning.
// Scoring never fails: an unreachable oracle scores a candidate 0.
func (mm *MatchmakerService) scoreCandidates(ctx context.Context, query string, candidates []models.Assistant) []scoredCandidate {
	limit := mm.FanoutLimit
	if limit <= 0 {
		limit = defaultFanoutLimit
	}

	scored := make([]scoredCandidate, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, candidate := range candidates {
		g.Go(func() error {
			scored[i] = scoredCandidate{
				assistant: candidate,
				score:     mm.Oracle.Score(gctx, query, candidate),
			}
			return nil
		})
	}
	_ = g.Wait()
	return scored
}

func (mm *MatchmakerService) createMatch(ctx context.Context, assistant *models.Assistant, match scoredCandidate, query string) error {
	if _, err := mm.Matches.UpsertMatch(ctx, assistant.UserID, match.assistant.UserID, match.score); err != nil {
		return err
	}

	toCandidate := fmt.Sprintf(
		`Hi %s, your assistant profile (context: "%s") was identified as a strong match for a search by %s. %s is looking for: "%s". I've started a chat for you both.`,
		match.assistant.Name, match.assistant.Context, assistant.Name, assistant.Name, query)
	if _, err := mm.Messages.AppendIntroduction(ctx, assistant.UserID, match.assistant.UserID, toCandidate); err != nil {
		return err
	}

	toInitiator := fmt.Sprintf(
		`Hi %s, I found a strong match for your search ("%s")! %s's assistant profile states: "%s". I've started a chat for you both.`,
		assistant.Name, query, match.assistant.Name, match.assistant.Context)
	if _, err := mm.Messages.AppendIntroduction(ctx, match.assistant.UserID, assistant.UserID, toInitiator); err != nil {
		return err
	}

	return nil
}

func summaryMessage(found int, query string) string {
	if found == 0 {
		return fmt.Sprintf(`I searched for matches based on your query: "%s", but didn't find any strong candidates right now. You can try rephrasing or broadening your search.`, query)
	}
	plural := ""
	if found > 1 {
		plural = "es"
	}
	return fmt.Sprintf(`I found %d strong match%s for your query: "%s". I've initiated conversations. Please check your 'Chat' tab.`, found, plural, query)
}
