package services

import "strings"

// SearchIntentClassifier decides whether an assistant-channel message is
// a search request or ordinary conversation. The keyword implementation
// below is deliberately coarse: a false positive just routes through
// matchmaking, which degrades to "no matches found".
type SearchIntentClassifier interface {
	IsSearchIntent(message string) bool
}

// searchKeywords is the fixed trigger set for the keyword classifier
var searchKeywords = []string{
	"looking for",
	"find",
	"search for",
	"developer",
	"engineer",
	"startups",
	"job",
}

type KeywordIntentClassifier struct{}

func (KeywordIntentClassifier) IsSearchIntent(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range searchKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
