package routes

import (
	"synapse_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up identity routes under /api/users
func RegisterUserRoutes(r *mux.Router) {
	userRouter := r.PathPrefix("/api/users").Subrouter()
	userRouter.HandleFunc("/me", controllers.CurrentUser).Methods("GET")
}
