package routes

import (
	"synapse_server/controllers"
	"synapse_server/services"

	"github.com/gorilla/mux"
)

// RegisterMessageRoutes sets up routes for messaging under /api/messages
func RegisterMessageRoutes(r *mux.Router, messageService *services.MessageService) {
	controller := controllers.NewMessageController(messageService)

	messageRouter := r.PathPrefix("/api/messages").Subrouter()
	messageRouter.HandleFunc("", controller.SendMessage).Methods("POST")
	messageRouter.HandleFunc("", controller.GetConversation).Methods("GET")
	messageRouter.HandleFunc("/assistant", controller.GetAssistantMessages).Methods("GET")
}
