package models

// Match records a scored pairing. User1 is the search initiator, User2 the
// discovered counterpart; the order is meaningful and never canonicalized.
type Match struct {
	MatchID   string  `dynamodbav:"matchId" json:"matchId"`
	User1ID   string  `dynamodbav:"user1Id" json:"user1Id"`
	User2ID   string  `dynamodbav:"user2Id" json:"user2Id"`
	Score     float64 `dynamodbav:"score" json:"score"`
	Status    string  `dynamodbav:"status" json:"status"`
	CreatedAt string  `dynamodbav:"createdAt" json:"createdAt"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// Secondary indexes on the Matches table
const (
	MatchesByUser1Index = "by_user1"
	MatchesByUser2Index = "by_user2"
)
