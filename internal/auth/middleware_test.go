package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authFixture(t *testing.T) (*SessionStore, *UserStore, string) {
	t.Helper()
	d := testDB(t)
	users := NewUserStore(d)
	sessions := NewSessionStore(d)

	u, err := users.Create("Pat", "pat@example.com", "s3cretpass", RoleManager)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := sessions.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sessions, users, token
}

func TestRequireTokenMissingHeader(t *testing.T) {
	sessions, users, _ := authFixture(t)

	handler := RequireToken(sessions, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/properties", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireTokenInvalidToken(t *testing.T) {
	sessions, users, _ := authFixture(t)

	handler := RequireToken(sessions, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireTokenValid(t *testing.T) {
	sessions, users, token := authFixture(t)

	var gotUser *User
	handler := RequireToken(sessions, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUser == nil || gotUser.Email != "pat@example.com" {
		t.Errorf("user in context = %+v, want pat@example.com", gotUser)
	}
}

func TestRequireTokenSkipsPublicPaths(t *testing.T) {
	sessions, users, _ := authFixture(t)

	handler := RequireToken(sessions, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/api/auth/login", "/api/auth/register", "/health"} {
		req := httptest.NewRequest("POST", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}
