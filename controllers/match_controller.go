package controllers

import (
	"encoding/json"
	"net/http"

	"synapse_server/auth"
	"synapse_server/models"
	"synapse_server/services"
)

// MatchController exposes the initiator's match list and the counterpart's
// accept/decline transitions.
type MatchController struct {
	MatchService *services.MatchService
}

func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// ListMatches returns the matches the authenticated user initiated
func (c *MatchController) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	matches, err := c.MatchService.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// AcceptMatch accepts a pending match; only the counterpart may do so
func (c *MatchController) AcceptMatch(w http.ResponseWriter, r *http.Request) {
	c.setStatus(w, r, models.MatchStatusAccepted)
}

// DeclineMatch declines a pending match; only the counterpart may do so
func (c *MatchController) DeclineMatch(w http.ResponseWriter, r *http.Request) {
	c.setStatus(w, r, models.MatchStatusDeclined)
}

func (c *MatchController) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.MatchID == "" {
		http.Error(w, `{"error": "Missing required field: matchId"}`, http.StatusBadRequest)
		return
	}

	match, err := c.MatchService.SetStatus(r.Context(), payload.MatchID, status, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}
