package auth

import (
	"net/http"

	"pacman-backend/logger"
)

// Middleware validates the JWT on a request and stamps the caller's
// identity onto it. The token comes from the Authorization header, or
// from a "token" query parameter for clients that cannot set headers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authenticate(w, r)
		if !ok {
			return
		}
		r.Header.Set("X-User-ID", claims.UserID)
		r.Header.Set("X-Username", claims.Username)
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves and validates the request's token. On failure the
// 401 response has already been written.
func authenticate(w http.ResponseWriter, r *http.Request) (*Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			authHeader = "Bearer " + token
		}
	}

	tokenString, err := ExtractTokenFromHeader(authHeader)
	if err != nil {
		http.Error(w, "Unauthorized: missing or malformed token", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := ValidateToken(tokenString)
	if err != nil {
		logger.Log.Warnf("token validation failed: %v", err)
		http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}
