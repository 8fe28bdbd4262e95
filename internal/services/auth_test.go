package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rribeiro1/spendless/internal/storage"
)

func newTestAuth(t *testing.T) (*AuthService, *storage.MemoryStore, *time.Time) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewAuthService(store, store)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, store, &now
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		pin      string
		wantErr  error
	}{
		{"valid", "rodrigo", "12345", nil},
		{"username too short", "ab", "12345", ErrInvalidUsername},
		{"username too long", "abcdefghijklmno", "12345", ErrInvalidUsername},
		{"username with symbol", "rod!go", "12345", ErrInvalidUsername},
		{"pin too short", "newuser", "1234", ErrInvalidPIN},
		{"pin with letters", "newuser2", "12a45", ErrInvalidPIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.pin)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_RegisterNeverStoresRawPIN(t *testing.T) {
	svc, store, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "rodrigo", "12345"); err != nil {
		t.Fatal(err)
	}

	u, err := store.UserByUsername(ctx, "rodrigo")
	if err != nil {
		t.Fatal(err)
	}
	if string(u.PINHash) == "12345" || len(u.PINHash) != 32 {
		t.Error("PIN must be stored as a 32-byte hash")
	}
	if len(u.Salt) == 0 {
		t.Error("salt missing")
	}
}

func TestAuthService_LoginAndSession(t *testing.T) {
	svc, _, now := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "rodrigo", "12345")
	if err != nil {
		t.Fatal(err)
	}

	token, err := svc.Login(ctx, "rodrigo", "12345")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	userID, err := svc.ValidateSession(token)
	if err != nil || userID != user.ID {
		t.Errorf("ValidateSession() = %d, %v, want %d, nil", userID, err, user.ID)
	}

	// Default expiry is five minutes; advance past it.
	*now = now.Add(6 * time.Minute)
	if _, err := svc.ValidateSession(token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("ValidateSession() after expiry = %v, want ErrSessionExpired", err)
	}
}

func TestAuthService_WrongPIN(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "rodrigo", "12345"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, "rodrigo", "54321"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "12345"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_LockoutAfterThreeFailures(t *testing.T) {
	svc, _, now := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "rodrigo", "12345"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(ctx, "rodrigo", "00000"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d error = %v", i, err)
		}
	}

	// Correct PIN is rejected while locked out.
	if _, err := svc.Login(ctx, "rodrigo", "12345"); !errors.Is(err, ErrLockedOut) {
		t.Errorf("Login() during lockout = %v, want ErrLockedOut", err)
	}

	// Default lockout is 30 seconds; after it passes login succeeds.
	*now = now.Add(31 * time.Second)
	if _, err := svc.Login(ctx, "rodrigo", "12345"); err != nil {
		t.Errorf("Login() after lockout = %v, want nil", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "rodrigo", "12345"); err != nil {
		t.Fatal(err)
	}
	token, err := svc.Login(ctx, "rodrigo", "12345")
	if err != nil {
		t.Fatal(err)
	}

	svc.Logout(token)
	if _, err := svc.ValidateSession(token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("ValidateSession() after logout = %v, want ErrSessionExpired", err)
	}
}
