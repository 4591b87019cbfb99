package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pacman-backend/auth"
	"pacman-backend/logger"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, auth.ErrUsernameTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			logger.Log.Errorf("register failed: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	h.respondWithToken(w, user.ID, user.Username)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		logger.Log.Errorf("login failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.respondWithToken(w, user.ID, user.Username)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, userID, username string) {
	token, err := auth.GenerateToken(userID, username)
	if err != nil {
		logger.Log.Errorf("token generation failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(authResponse{
		Token:    token,
		UserID:   userID,
		Username: username,
	})
}
