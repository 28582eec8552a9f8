package routes

import (
	"synapse_server/controllers"
	"synapse_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.CreateProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetProfile).Methods("GET")
}
