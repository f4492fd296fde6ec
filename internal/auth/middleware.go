package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userKey contextKey = "user"

// UserFromContext returns the authenticated user for a request, or nil.
func UserFromContext(r *http.Request) *User {
	u, _ := r.Context().Value(userKey).(*User)
	return u
}

// RequireToken is middleware that validates Bearer token auth for /api/ routes.
// Non-API routes and the public auth endpoints pass through untouched.
// Missing header yields 401; an unknown token yields 403.
func RequireToken(sessions *SessionStore, users *UserStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Access token required", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := sessions.Validate(token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusForbidden)
			return
		}

		user, err := users.GetByID(userID)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isPublicPath returns true for endpoints reachable without a token.
func isPublicPath(path string) bool {
	return path == "/api/auth/register" || path == "/api/auth/login"
}
