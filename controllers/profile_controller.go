package controllers

import (
	"encoding/json"
	"net/http"

	"synapse_server/auth"
	"synapse_server/services"

	"github.com/gorilla/mux"
)

// ProfileController handles requests related to user profiles
type ProfileController struct {
	ProfileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

func (c *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Name      string   `json:"name"`
		Bio       string   `json:"bio"`
		Interests []string `json:"interests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		http.Error(w, `{"error": "Missing required field: name"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.ProfileService.CreateProfile(r.Context(), userID, payload.Name, payload.Bio, payload.Interests)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Profile created successfully",
		"profile": profile,
	})
}

func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
