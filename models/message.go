package models

// Message is immutable once written. Peer DMs carry a conversationId;
// assistant-channel rows (senderId == receiverId) carry none and are
// retrieved by the sender/receiver pair instead.
type Message struct {
	MessageID          string `dynamodbav:"messageId" json:"messageId"`
	SenderID           string `dynamodbav:"senderId" json:"senderId"`
	ReceiverID         string `dynamodbav:"receiverId" json:"receiverId"`
	ConversationID     string `dynamodbav:"conversationId,omitempty" json:"conversationId,omitempty"`
	Content            string `dynamodbav:"content" json:"content"` // text, or the storage key for images
	Type               string `dynamodbav:"type" json:"type"`
	IsAssistantMessage bool   `dynamodbav:"isAssistantMessage" json:"isAssistantMessage"`
	CreatedAt          string `dynamodbav:"createdAt" json:"createdAt"`

	// URL is resolved from object storage at read time for image messages, never stored.
	URL string `dynamodbav:"-" json:"url,omitempty"`
}

// MessagesTable is the DynamoDB table name for messages
const MessagesTable = "Messages"

// Secondary indexes on the Messages table
const (
	MessagesByConversationIndex   = "by_conversationId"
	MessagesBySenderReceiverIndex = "by_senderId_and_receiverId"
)
