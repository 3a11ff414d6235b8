package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

var ErrUserNotFound = errors.New("user not found")

// UserStorage is an in-memory user registry for running without a database.
type UserStorage struct {
	mu    sync.RWMutex
	users map[int64]entities.User
}

// NewUserStorage creates a new UserStorage.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[int64]entities.User),
	}
}

// Save inserts a new user or refreshes the chat of an existing one.
func (s *UserStorage) Save(_ context.Context, user *entities.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		existing.ChatID = user.ChatID
		existing.IsActive = true
		s.users[user.ID] = existing

		user.DailyTeaching = existing.DailyTeaching
		user.CreatedAt = existing.CreatedAt
		return false, nil
	}

	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return true, nil
}

// GetByID retrieves a user by ID.
func (s *UserStorage) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// SetDailyTeaching switches the daily teaching subscription.
func (s *UserStorage) SetDailyTeaching(_ context.Context, userID int64, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.DailyTeaching = enabled
	s.users[userID] = u
	return nil
}

// Deactivate marks a user inactive.
func (s *UserStorage) Deactivate(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.IsActive = false
		s.users[userID] = u
	}
	return nil
}

// ListTeachingSubscribers returns active subscribed users ordered by ID.
func (s *UserStorage) ListTeachingSubscribers(_ context.Context) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.User
	for _, u := range s.users {
		if u.IsActive && u.DailyTeaching {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
