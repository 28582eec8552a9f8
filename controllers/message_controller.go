package controllers

import (
	"encoding/json"
	"net/http"

	"synapse_server/auth"
	"synapse_server/models"
	"synapse_server/services"
)

// MessageController handles peer DMs and the assistant channel read side
type MessageController struct {
	MessageService *services.MessageService
}

func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

// SendMessage appends a peer DM from the authenticated user
func (c *MessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		ReceiverID string `json:"receiverId"`
		Content    string `json:"content"`
		Type       string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}
	if payload.ReceiverID == "" || payload.Content == "" {
		http.Error(w, `{"error": "Missing required fields: receiverId, content"}`, http.StatusBadRequest)
		return
	}
	if payload.Type == "" {
		payload.Type = models.MessageTypeText
	}
	if payload.Type != models.MessageTypeText && payload.Type != models.MessageTypeImage {
		http.Error(w, `{"error": "type must be text or image"}`, http.StatusBadRequest)
		return
	}

	message, err := c.MessageService.SendPeerMessage(r.Context(), senderID, payload.ReceiverID, payload.Type, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, message)
}

// GetConversation returns the DM history with ?otherId=, oldest first
func (c *MessageController) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	otherID := r.URL.Query().Get("otherId")
	if otherID == "" {
		http.Error(w, `{"error": "otherId is required"}`, http.StatusBadRequest)
		return
	}

	messages, err := c.MessageService.ListConversation(r.Context(), userID, otherID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// GetAssistantMessages returns the authenticated user's assistant channel
func (c *MessageController) GetAssistantMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := c.MessageService.ListAssistantChannel(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
