package controllers

import (
	"encoding/json"
	"net/http"

	"synapse_server/auth"
	"synapse_server/services"

	"github.com/gorilla/mux"
)

// AssistantController handles assistant setup and the assistant chat channel
type AssistantController struct {
	AssistantService *services.AssistantService
	ChatService      *services.ChatService
}

func NewAssistantController(assistantService *services.AssistantService, chatService *services.ChatService) *AssistantController {
	return &AssistantController{AssistantService: assistantService, ChatService: chatService}
}

func (c *AssistantController) CreateAssistant(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Personality string `json:"personality"`
		Context     string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		http.Error(w, `{"error": "Missing required field: name"}`, http.StatusBadRequest)
		return
	}

	assistant, err := c.AssistantService.CreateAssistant(r.Context(), userID, payload.Name, payload.Personality, payload.Context)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Assistant created successfully",
		"assistant": assistant,
	})
}

func (c *AssistantController) GetAssistant(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	assistant, err := c.AssistantService.GetAssistant(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assistant)
}

// Chat receives one assistant-channel message. The response is the
// updated channel; whether the turn triggered matchmaking or a chat
// reply is not surfaced here.
func (c *AssistantController) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Message == "" {
		http.Error(w, `{"error": "Missing required field: message"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.HandleMessage(r.Context(), userID, payload.Message); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
