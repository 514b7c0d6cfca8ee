package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/remi-assist/remi-backend/internal/core"
	"github.com/remi-assist/remi-backend/internal/store"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier maps a bearer token to a user identifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type APIHandler struct {
	assistant   *core.AssistantService
	recordStore store.RecordStore
	verifier    TokenVerifier
}

func NewAPIHandler(assistant *core.AssistantService, recordStore store.RecordStore, verifier TokenVerifier) *APIHandler {
	return &APIHandler{
		assistant:   assistant,
		recordStore: recordStore,
		verifier:    verifier,
	}
}

// AuthMiddleware requires a valid bearer token and binds the resulting user
// identifier to the request context. No anonymous path exists.
func (h *APIHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "Unauthorized. No token provided.")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := h.verifier.Verify(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type AskRequest struct {
	Query     string         `json:"query"`
	Timetable map[string]any `json:"timetable,omitempty"`
}

func (h *APIHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDKey).(string)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "Query is required")
		return
	}

	result, err := h.assistant.Ask(r.Context(), userID, req.Query, req.Timetable)
	if err != nil {
		log.Printf("Error processing query for user %s: %v", userID, err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "AI processing failed",
			"details": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HealthHandler reports liveness with a minimal read against the record
// store. The "firebase" key is part of the published wire contract.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.recordStore.Ping(r.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"status":   "unhealthy",
			"firebase": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"firebase":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
