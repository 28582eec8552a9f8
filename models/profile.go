package models

// Profile defines the public profile a user fills in once
type Profile struct {
	UserID     string   `dynamodbav:"userId" json:"userId"`
	Name       string   `dynamodbav:"name" json:"name"`
	Bio        string   `dynamodbav:"bio" json:"bio"`
	Interests  []string `dynamodbav:"interests,omitempty" json:"interests"`
	LastActive int64    `dynamodbav:"lastActive" json:"lastActive"` // Unix millis of last activity
}

// ProfilesTable is the DynamoDB table name for user profiles
const ProfilesTable = "Profiles"
