package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rribeiro1/spendless/internal/core"
)

var ErrUserNotFound = errors.New("user not found")

// MemoryStore is an in-memory implementation of the storage ports, used
// by tests and by the worker's dev mode. Behavior mirrors the SQLite
// repository field for field.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction

	nextUserID int64
	users      map[string]core.User
	formatting map[int64]core.FormattingPreferences
	sessions   map[int64]core.SessionPreferences
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]core.User),
		formatting: make(map[int64]core.FormattingPreferences),
		sessions:   make(map[int64]core.SessionPreferences),
	}
}

func (s *MemoryStore) GetAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	tx.ID = s.nextID
	s.items = append(s.items, tx)
	return tx, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

func (s *MemoryStore) HasOccurrence(_ context.Context, template core.Transaction, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.items {
		if tx.Recurrence != core.RecurrenceNone {
			continue
		}
		if tx.Description != template.Description ||
			!tx.Amount.Equal(template.Amount) ||
			tx.Category != template.Category ||
			tx.Type != template.Type {
			continue
		}
		if !tx.CreatedAt.Before(dayStart) && tx.CreatedAt.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Username]; exists {
		return core.User{}, errors.New("username already taken")
	}
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.Username] = u
	return u, nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return core.User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryStore) FormattingPreferences(_ context.Context, userID int64) (core.FormattingPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.formatting[userID]; ok {
		return p, nil
	}
	return core.DefaultFormattingPreferences(), nil
}

func (s *MemoryStore) SessionPreferences(_ context.Context, userID int64) (core.SessionPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.sessions[userID]; ok {
		return p, nil
	}
	return core.SessionPreferences{SessionExpiry: 5 * time.Minute, LockoutDuration: 30 * time.Second}, nil
}

func (s *MemoryStore) SetFormattingPreferences(_ context.Context, userID int64, p core.FormattingPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formatting[userID] = p
	return nil
}

func (s *MemoryStore) SetSessionPreferences(_ context.Context, userID int64, p core.SessionPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = p
	return nil
}
