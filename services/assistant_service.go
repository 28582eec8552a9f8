package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"synapse_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// assistantStore is the slice of the DynamoDB wrapper the assistant
// service touches.
type assistantStore interface {
	PutItemConditional(ctx context.Context, tableName string, item interface{}, conditionExpression string) error
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error
	UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error)
}

type AssistantService struct {
	Dynamo assistantStore
	Logger *zap.Logger
}

// CreateAssistant configures the AI assistant for a user. At most one
// assistant per user: the write is guarded by attribute_not_exists, so a
// second create fails with models.ErrConflict without touching the first.
func (as *AssistantService) CreateAssistant(ctx context.Context, userID, name, personality, contextText string) (*models.Assistant, error) {
	assistant := models.Assistant{
		UserID:      userID,
		Name:        name,
		Personality: personality,
		Context:     contextText,
		LastMessage: time.Now().UnixMilli(),
	}
	err := as.Dynamo.PutItemConditional(ctx, models.AssistantsTable, assistant, "attribute_not_exists(userId)")
	if errors.Is(err, models.ErrConditionFailed) {
		return nil, fmt.Errorf("assistant for user %s: %w", userID, models.ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	as.Logger.Info("assistant created", zap.String("user_id", userID), zap.String("name", name))
	return &assistant, nil
}

// GetAssistant retrieves the assistant configured by a user
func (as *AssistantService) GetAssistant(ctx context.Context, userID string) (*models.Assistant, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := as.Dynamo.GetItem(ctx, models.AssistantsTable, key)
	if err != nil {
		return nil, err
	}

	var assistant models.Assistant
	if err := attributevalue.UnmarshalMap(item, &assistant); err != nil {
		return nil, fmt.Errorf("failed to parse assistant: %w", err)
	}
	return &assistant, nil
}

// ListOtherAssistants returns every assistant except the given user's.
// This is the matchmaking candidate set.
func (as *AssistantService) ListOtherAssistants(ctx context.Context, userID string) ([]models.Assistant, error) {
	var assistants []models.Assistant
	err := as.Dynamo.ScanWithFilter(ctx, models.AssistantsTable, nil, map[string]string{
		"userId": userID,
	}, &assistants)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate assistants: %w", err)
	}
	return assistants, nil
}

// TouchLastMessage stamps the assistant's lastMessage timestamp. Called on
// every chat turn.
func (as *AssistantService) TouchLastMessage(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updateExpression := "SET lastMessage = :now"
	expressionValues := map[string]types.AttributeValue{
		":now": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().UnixMilli())},
	}

	_, err := as.Dynamo.UpdateItem(ctx, models.AssistantsTable, updateExpression, key, expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to stamp lastMessage for user %s: %w", userID, err)
	}
	return nil
}
