package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cryptoalerts/internal/store"
)

// Keep validation logic centralized to avoid divergence across endpoints.

var validConditions = map[string]struct{}{
	store.ConditionAbove: {},
	store.ConditionBelow: {},
}

func isValidCondition(condition string) bool {
	_, ok := validConditions[condition]
	return ok
}

var validChannels = map[string]struct{}{
	store.ChannelEmail: {},
	store.ChannelSMS:   {},
}

func isValidChannel(channel string) bool {
	_, ok := validChannels[channel]
	return ok
}

func isPlausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// HTTP helper functions to reduce duplication across handlers.

// decodeJSON decodes the request body as JSON into the provided value.
// Returns true on success, false on error (and writes an error response).
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON writes the value as JSON with appropriate headers.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// requireQueryParam extracts a query parameter and validates it's not empty.
func requireQueryParam(w http.ResponseWriter, r *http.Request, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		http.Error(w, paramName+" query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return value, true
}
