package services

import "testing"

func TestKeywordIntentClassifier(t *testing.T) {
	classifier := KeywordIntentClassifier{}

	tests := []struct {
		message string
		want    bool
	}{
		{message: "I'm looking for a developer", want: true},
		{message: "Find me a co-founder", want: true},
		{message: "SEARCH FOR designers", want: true},
		{message: "any engineer friends?", want: true},
		{message: "interested in startups", want: true},
		{message: "I need a new job", want: true},
		{message: "How is the weather?", want: false},
		{message: "Tell me a joke", want: false},
		{message: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.message, func(t *testing.T) {
			if got := classifier.IsSearchIntent(tc.message); got != tc.want {
				t.Fatalf("IsSearchIntent(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}
