package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jcarver/rentroll/internal/auth"
)

// handleRegister creates a user account and logs it in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.users.Create(req.Name, req.Email, req.Password, auth.Role(req.Role))
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		apiError(w, "creating session", http.StatusInternalServerError)
		return
	}

	apiJSON(w, map[string]interface{}{"user": user, "token": token}, http.StatusCreated)
}

// handleLogin authenticates and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	user, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		apiError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		apiError(w, "creating session", http.StatusInternalServerError)
		return
	}

	apiJSON(w, map[string]interface{}{"user": user, "token": token}, http.StatusOK)
}

// handleLogout destroys the presented session token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		apiError(w, "no token presented", http.StatusBadRequest)
		return
	}

	if err := s.sessions.Destroy(token); err != nil {
		apiError(w, "destroying session", http.StatusInternalServerError)
		return
	}

	apiJSON(w, map[string]bool{"loggedOut": true}, http.StatusOK)
}

// handleMe returns the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r)
	if user == nil {
		apiError(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	apiJSON(w, user, http.StatusOK)
}
