package models

// Assistant is the per-user AI assistant configuration. At most one row per user.
type Assistant struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	Name        string `dynamodbav:"name" json:"name"`
	Personality string `dynamodbav:"personality" json:"personality"`
	Context     string `dynamodbav:"context" json:"context"`         // the user's standing ask, e.g. job search criteria
	LastMessage int64  `dynamodbav:"lastMessage" json:"lastMessage"` // Unix millis of last interaction
}

// AssistantsTable is the DynamoDB table name for assistants
const AssistantsTable = "Assistants"
