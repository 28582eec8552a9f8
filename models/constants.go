package models

// Message content types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Match statuses
const (
	MatchStatusPending  = "pending"
	MatchStatusAccepted = "accepted"
	MatchStatusDeclined = "declined"
)

// ValidMatchStatus reports whether s is a status a caller may transition a match to.
func ValidMatchStatus(s string) bool {
	return s == MatchStatusAccepted || s == MatchStatusDeclined
}
