package controllers

import (
	"net/http"

	"synapse_server/auth"
)

// CurrentUser echoes the authenticated identity. User attributes live
// with the auth collaborator; this core only knows the id.
func CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userId": userID})
}
