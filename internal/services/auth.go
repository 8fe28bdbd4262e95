package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rribeiro1/spendless/internal/core"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 14
	pinLength         = 5
	maxFailedAttempts = 3
)

var (
	ErrInvalidUsername    = errors.New("username must be 3-14 characters, letters and digits only")
	ErrInvalidPIN         = errors.New("pin must be exactly 5 digits")
	ErrInvalidCredentials = errors.New("invalid username or pin")
	ErrLockedOut          = errors.New("too many failed attempts, try again later")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles registration, PIN verification and sessions.
// Lockout and session state live in memory: they are per-device security
// state, not durable data.
type AuthService struct {
	users UserStore
	prefs PreferencesSource
	now   func() time.Time

	mu       sync.Mutex
	failures map[string]*lockState
	sessions map[string]session
}

type lockState struct {
	count       int
	lockedUntil time.Time
}

type session struct {
	userID    int64
	expiresAt time.Time
}

func NewAuthService(users UserStore, prefs PreferencesSource) *AuthService {
	return &AuthService{
		users:    users,
		prefs:    prefs,
		now:      time.Now,
		failures: make(map[string]*lockState),
		sessions: make(map[string]session),
	}
}

// Register creates a user with a salted PIN hash. The raw PIN is never
// stored.
func (s *AuthService) Register(ctx context.Context, username, pin string) (core.User, error) {
	if !validUsername(username) {
		return core.User{}, ErrInvalidUsername
	}
	if !validPIN(pin) {
		return core.User{}, ErrInvalidPIN
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return core.User{}, fmt.Errorf("generate salt: %w", err)
	}

	user, err := s.users.CreateUser(ctx, core.User{
		Username:  username,
		PINHash:   hashPIN(salt, pin),
		Salt:      salt,
		CreatedAt: s.now(),
	})
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "username", username, "user_id", user.ID)
	return user, nil
}

// Login verifies the PIN and opens a session whose lifetime comes from
// the user's session preferences. Three failed attempts lock the
// account for the configured lockout duration.
func (s *AuthService) Login(ctx context.Context, username, pin string) (string, error) {
	if locked, until := s.isLockedOut(username); locked {
		slog.WarnContext(ctx, "Login rejected, account locked",
			"username", username,
			"locked_until", until.Format(time.RFC3339))
		return "", ErrLockedOut
	}

	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		// Same failure path as a wrong PIN so usernames cannot be probed.
		s.recordFailure(ctx, username, 0)
		return "", ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare(hashPIN(user.Salt, pin), user.PINHash) != 1 {
		s.recordFailure(ctx, username, user.ID)
		return "", ErrInvalidCredentials
	}

	s.clearFailures(username)

	sp, err := s.prefs.SessionPreferences(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("load session preferences: %w", err)
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{userID: user.ID, expiresAt: s.now().Add(sp.SessionExpiry)}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Session opened", "user_id", user.ID, "expiry", sp.SessionExpiry)
	return token, nil
}

// ValidateSession resolves a token to its user ID, expiring stale
// sessions as a side effect.
func (s *AuthService) ValidateSession(token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return 0, ErrSessionExpired
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, ErrSessionExpired
	}
	return sess.userID, nil
}

// Logout discards a session token.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *AuthService) isLockedOut(username string) (bool, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.failures[username]
	if !ok {
		return false, time.Time{}
	}
	if s.now().Before(st.lockedUntil) {
		return true, st.lockedUntil
	}
	return false, time.Time{}
}

func (s *AuthService) recordFailure(ctx context.Context, username string, userID int64) {
	sp, err := s.prefs.SessionPreferences(ctx, userID)
	if err != nil {
		sp = core.SessionPreferences{LockoutDuration: 30 * time.Second}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.failures[username]
	if !ok {
		st = &lockState{}
		s.failures[username] = st
	}
	st.count++
	if st.count >= maxFailedAttempts {
		st.lockedUntil = s.now().Add(sp.LockoutDuration)
		st.count = 0
	}
}

func (s *AuthService) clearFailures(username string) {
	s.mu.Lock()
	delete(s.failures, username)
	s.mu.Unlock()
}

func hashPIN(salt []byte, pin string) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(pin))
	return h.Sum(nil)
}

func validUsername(username string) bool {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return false
	}
	for _, r := range username {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func validPIN(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
