package routes

import (
	"synapse_server/controllers"
	"synapse_server/services"

	"github.com/gorilla/mux"
)

// RegisterAssistantRoutes sets up routes for assistant operations under /api/assistants
func RegisterAssistantRoutes(r *mux.Router, assistantService *services.AssistantService, chatService *services.ChatService) {
	controller := controllers.NewAssistantController(assistantService, chatService)

	assistantRouter := r.PathPrefix("/api/assistants").Subrouter()
	assistantRouter.HandleFunc("", controller.CreateAssistant).Methods("POST")
	assistantRouter.HandleFunc("/chat", controller.Chat).Methods("POST")
	assistantRouter.HandleFunc("/{userId}", controller.GetAssistant).Methods("GET")
}
