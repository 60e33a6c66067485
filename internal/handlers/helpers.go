package handlers

import (
	"encoding/json"
	"net/http"
)

// userIDFromContext returns the owner id injected by the JWT middleware.
func userIDFromContext(r *http.Request) string {
	userID, _ := r.Context().Value("user_id").(string)
	return userID
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
