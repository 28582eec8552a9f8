package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"synapse_server/models"

	"go.uber.org/zap"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) GenerateChat(_ context.Context, _ string, _ []ChatTurn, message string, _ int32) (string, error) {
	f.prompts = append(f.prompts, message)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "bare decimal", raw: "0.7", want: 0.7},
		{name: "perfect score", raw: "1.0", want: 1.0},
		{name: "bare one", raw: "1", want: 1},
		{name: "score inside prose", raw: "The score is 0.92 overall.", want: 0.92},
		{name: "unparseable", raw: "no idea", want: 0},
		{name: "empty", raw: "", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseScore(tc.raw); got != tc.want {
				t.Fatalf("ParseScore(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestScoreCanonicalContextShortCircuits(t *testing.T) {
	// the generator fails hard; the canonical fixture must still score 1.0
	gen := &fakeGenerator{err: errors.New("oracle down")}
	oracle := &CompatibilityOracle{Generator: gen, Logger: zap.NewNop()}

	candidate := models.Assistant{UserID: "u2", Name: "Bolt", Context: CanonicalCandidateContext}
	if got := oracle.Score(context.Background(), "anything at all", candidate); got != 1.0 {
		t.Fatalf("got score %v, want 1.0", got)
	}
	if len(gen.prompts) != 0 {
		t.Fatal("oracle must not be called for the canonical context")
	}
}

func TestScoreDegradesToZeroOnOracleFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("deadline exceeded")}
	oracle := &CompatibilityOracle{Generator: gen, Timeout: time.Second, Logger: zap.NewNop()}

	candidate := models.Assistant{UserID: "u2", Name: "Bolt", Context: "Backend roles"}
	if got := oracle.Score(context.Background(), "looking for a developer", candidate); got != 0 {
		t.Fatalf("got score %v, want 0", got)
	}
}

func TestScoreDegradesToZeroOnGarbageResponse(t *testing.T) {
	gen := &fakeGenerator{response: "certainly! here is my assessment"}
	oracle := &CompatibilityOracle{Generator: gen, Logger: zap.NewNop()}

	candidate := models.Assistant{UserID: "u2", Name: "Bolt", Context: "Backend roles"}
	if got := oracle.Score(context.Background(), "looking for a developer", candidate); got != 0 {
		t.Fatalf("got score %v, want 0", got)
	}
}

func TestScorePromptCarriesQueryAndContext(t *testing.T) {
	gen := &fakeGenerator{response: "0.7"}
	oracle := &CompatibilityOracle{Generator: gen, Logger: zap.NewNop()}

	candidate := models.Assistant{UserID: "u2", Name: "Bolt", Context: "Backend roles"}
	if got := oracle.Score(context.Background(), "looking for a developer", candidate); got != 0.7 {
		t.Fatalf("got score %v, want 0.7", got)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one oracle call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	for _, fragment := range []string{`"looking for a developer"`, "Bolt", `"Backend roles"`, "ONLY with the numerical score"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}
