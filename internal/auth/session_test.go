package auth

import "testing"

func TestSessionCreateAndValidate(t *testing.T) {
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
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}

	userID, err := sessions.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != u.ID {
		t.Errorf("user id = %d, want %d", userID, u.ID)
	}
}

func TestSessionValidateUnknownToken(t *testing.T) {
	sessions := NewSessionStore(testDB(t))

	if _, err := sessions.Validate("not-a-real-token"); err == nil {
		t.Fatal("expected error for unknown token")
	}
}

func TestSessionDestroy(t *testing.T) {
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

	if err := sessions.Destroy(token); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if _, err := sessions.Validate(token); err == nil {
		t.Fatal("expected error after destroy")
	}
}
