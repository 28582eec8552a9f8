package routes

import (
	"synapse_server/controllers"
	"synapse_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match operations under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.ListMatches).Methods("GET")
	matchRouter.HandleFunc("/accept", controller.AcceptMatch).Methods("POST")
	matchRouter.HandleFunc("/decline", controller.DeclineMatch).Methods("POST")
}
