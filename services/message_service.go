package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"synapse_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationID derives the stable conversation key for a pair of users:
// the lexicographically smaller id always comes first, so both directions
// of a DM land in the same conversation.
func ConversationID(userID1, userID2 string) string {
	if userID1 < userID2 {
		return userID1 + "_" + userID2
	}
	return userID2 + "_" + userID1
}

// messageStore is the slice of the DynamoDB wrapper the message service
// touches.
type messageStore interface {
	PutItem(ctx context.Context, tableName string, item interface{}) error
	QueryItemsWithIndex(ctx context.Context, tableName string, indexName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error)
}

type MessageService struct {
	Dynamo messageStore
	Media  *S3Service
	Logger *zap.Logger
}

// SendPeerMessage appends a human-authored DM. Self-addressed sends are
// rejected here; the assistant channel has its own append path.
func (ms *MessageService) SendPeerMessage(ctx context.Context, senderID, receiverID, messageType, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, models.ErrSelfMessage
	}
	return ms.appendPeer(ctx, senderID, receiverID, messageType, content, false)
}

// AppendIntroduction appends an assistant-authored DM on behalf of a
// matched pair. Used by the matchmaker to seed both sides of a new
// conversation.
func (ms *MessageService) AppendIntroduction(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	return ms.appendPeer(ctx, senderID, receiverID, models.MessageTypeText, content, true)
}

func (ms *MessageService) appendPeer(ctx context.Context, senderID, receiverID, messageType, content string, assistantOrigin bool) (*models.Message, error) {
	message := models.Message{
		MessageID:          uuid.New().String(),
		SenderID:           senderID,
		ReceiverID:         receiverID,
		ConversationID:     ConversationID(senderID, receiverID),
		Content:            content,
		Type:               messageType,
		IsAssistantMessage: assistantOrigin,
		CreatedAt:          time.Now().Format(time.RFC3339Nano),
	}

	if err := ms.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return &message, nil
}

// AppendAssistantChannel appends to a user's private assistant stream.
// Sender and receiver are both the user; no conversation id is set.
func (ms *MessageService) AppendAssistantChannel(ctx context.Context, userID, content string, assistantOrigin bool) (*models.Message, error) {
	message := models.Message{
		MessageID:          uuid.New().String(),
		SenderID:           userID,
		ReceiverID:         userID,
		Content:            content,
		Type:               models.MessageTypeText,
		IsAssistantMessage: assistantOrigin,
		CreatedAt:          time.Now().Format(time.RFC3339Nano),
	}

	if err := ms.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}
	return &message, nil
}

// ListConversation fetches the DM history between two users in ascending
// creation order. Image messages get a presigned read URL resolved at
// read time; the URL is never stored.
func (ms *MessageService) ListConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	conversationID := ConversationID(userID, otherID)

	keyCondition := "#conversationId = :conversationId"
	expressionValues := map[string]types.AttributeValue{
		":conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	expressionNames := map[string]string{
		"#conversationId": "conversationId",
	}

	items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MessagesTable, models.MessagesByConversationIndex, keyCondition, expressionValues, expressionNames, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}

	messages, err := ms.unmarshalSorted(items)
	if err != nil {
		return nil, err
	}

	for i := range messages {
		if messages[i].Type != models.MessageTypeImage || ms.Media == nil {
			continue
		}
		url, err := ms.Media.GenerateReadURL(ctx, messages[i].Content)
		if err != nil {
			ms.Logger.Warn("failed to resolve image url",
				zap.String("message_id", messages[i].MessageID), zap.Error(err))
			continue
		}
		messages[i].URL = url
	}

	return messages, nil
}

// ListAssistantChannel fetches a user's assistant stream in ascending
// creation order.
func (ms *MessageService) ListAssistantChannel(ctx context.Context, userID string) ([]models.Message, error) {
	items, err := ms.queryAssistantChannel(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ms.unmarshalSorted(items)
}

// RecentAssistantChannel returns the newest limit messages of a user's
// assistant stream, newest first. The responder reverses these into the
// oracle's chronological history window.
func (ms *MessageService) RecentAssistantChannel(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	items, err := ms.queryAssistantChannel(ctx, userID)
	if err != nil {
		return nil, err
	}
	messages, err := ms.unmarshalSorted(items)
	if err != nil {
		return nil, err
	}

	// newest first, capped
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (ms *MessageService) queryAssistantChannel(ctx context.Context, userID string) ([]map[string]types.AttributeValue, error) {
	keyCondition := "#senderId = :userId AND #receiverId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}
	expressionNames := map[string]string{
		"#senderId":   "senderId",
		"#receiverId": "receiverId",
	}

	items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MessagesTable, models.MessagesBySenderReceiverIndex, keyCondition, expressionValues, expressionNames, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assistant channel: %w", err)
	}
	return items, nil
}

func (ms *MessageService) unmarshalSorted(items []map[string]types.AttributeValue) ([]models.Message, error) {
	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Query order over a GSI is not guaranteed; sort by creation time.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	return messages, nil
}
