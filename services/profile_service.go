package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"synapse_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// profileStore is the slice of the DynamoDB wrapper the profile service
// touches.
type profileStore interface {
	PutItemConditional(ctx context.Context, tableName string, item interface{}, conditionExpression string) error
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
}

type ProfileService struct {
	Dynamo profileStore
}

// CreateProfile adds a profile for a user. Creation is one-shot: the
// write is guarded by attribute_not_exists, so a second profile for the
// same user fails with models.ErrConflict and leaves the first untouched
// even under concurrent creates.
func (ps *ProfileService) CreateProfile(ctx context.Context, userID, name, bio string, interests []string) (*models.Profile, error) {
	profile := models.Profile{
		UserID:     userID,
		Name:       name,
		Bio:        bio,
		Interests:  interests,
		LastActive: time.Now().UnixMilli(),
	}
	err := ps.Dynamo.PutItemConditional(ctx, models.ProfilesTable, profile, "attribute_not_exists(userId)")
	if errors.Is(err, models.ErrConditionFailed) {
		return nil, fmt.Errorf("profile for user %s: %w", userID, models.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile retrieves a profile by user ID
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ps.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}
