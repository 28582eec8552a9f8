package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"synapse_server/models"
	"synapse_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// matchStore is the slice of the DynamoDB wrapper the match service
// touches.
type matchStore interface {
	PutItem(ctx context.Context, tableName string, item interface{}) error
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error)
	UpdateItemConditional(ctx context.Context, tableName string, updateExpression string, conditionExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error)
	QueryItemsWithIndex(ctx context.Context, tableName string, indexName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error)
}

type MatchService struct {
	Dynamo matchStore
	Logger *zap.Logger
}

// FindByPair looks up a match by its ordered (initiator, counterpart)
// pair. The order is the stored order, not the canonical conversation
// order: a match is keyed by who searched.
func (msv *MatchService) FindByPair(ctx context.Context, user1ID, user2ID string) (*models.Match, error) {
	matches, err := msv.ListForUser(ctx, user1ID)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].User2ID == user2ID {
			return &matches[i], nil
		}
	}
	return nil, nil
}

// UpsertMatch creates a pending match, or raises the stored score if the
// pair has been scored before. Re-scoring never lowers a score and never
// touches the status.
func (msv *MatchService) UpsertMatch(ctx context.Context, user1ID, user2ID string, score float64) (*models.Match, error) {
	existing, err := msv.FindByPair(ctx, user1ID, user2ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if !shouldRaiseScore(existing.Score, score) {
			return existing, nil
		}
		key := map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: existing.MatchID},
		}
		updateExpression := "SET score = :score"
		expressionValues := map[string]types.AttributeValue{
			":score": &types.AttributeValueMemberN{Value: fmt.Sprintf("%v", score)},
		}
		// The raise is guarded on the store side so a concurrent rescore
		// that already wrote a higher value cannot be lowered by this one.
		attrs, err := msv.Dynamo.UpdateItemConditional(ctx, models.MatchesTable, updateExpression, "score < :score", key, expressionValues, nil)
		if errors.Is(err, models.ErrConditionFailed) {
			return msv.GetMatch(ctx, existing.MatchID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to raise match score: %w", err)
		}
		existing.Score = utils.ExtractFloat(attrs, "score")
		return existing, nil
	}

	match := models.Match{
		MatchID:   uuid.New().String(),
		User1ID:   user1ID,
		User2ID:   user2ID,
		Score:     score,
		Status:    models.MatchStatusPending,
		CreatedAt: time.Now().Format(time.RFC3339Nano),
	}
	if err := msv.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return nil, fmt.Errorf("failed to store match: %w", err)
	}

	msv.Logger.Info("match created",
		zap.String("user1_id", user1ID),
		zap.String("user2_id", user2ID),
		zap.Float64("score", score))
	return &match, nil
}

// ListForUser returns the matches a user initiated (user1 side only).
// Matches where the user is the counterpart are reachable through the
// by_user2 index by callers that need the other role.
func (msv *MatchService) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	keyCondition := "#user1Id = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}
	expressionNames := map[string]string{
		"#user1Id": "user1Id",
	}

	items, err := msv.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchesByUser1Index, keyCondition, expressionValues, expressionNames, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	var matches []models.Match
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse matches: %w", err)
	}
	return matches, nil
}

// GetMatch retrieves a match by id
func (msv *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	item, err := msv.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to parse match: %w", err)
	}
	return &match, nil
}

// SetStatus transitions a match to accepted or declined. Only the
// counterpart (user2) may act on a match.
func (msv *MatchService) SetStatus(ctx context.Context, matchID, status, actingUserID string) (*models.Match, error) {
	if !models.ValidMatchStatus(status) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	match, err := msv.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := authorizeStatusChange(*match, actingUserID); err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	updateExpression := "SET #status = :status"
	expressionValues := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: status},
	}
	expressionNames := map[string]string{
		"#status": "status",
	}
	attrs, err := msv.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, key, expressionValues, expressionNames)
	if err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	match.Status = utils.ExtractString(attrs, "status")
	return match, nil
}

// shouldRaiseScore reports whether a re-scored pair should have its
// stored score replaced. Scores only go up.
func shouldRaiseScore(existing, candidate float64) bool {
	return candidate > existing
}

// authorizeStatusChange enforces that only the match counterpart may
// accept or decline.
func authorizeStatusChange(match models.Match, actingUserID string) error {
	if match.User2ID != actingUserID {
		return fmt.Errorf("user %s cannot act on match %s: %w", actingUserID, match.MatchID, models.ErrNotAuthorized)
	}
	return nil
}
