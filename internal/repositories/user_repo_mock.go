package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"brocante/internal/apperr"
	"brocante/internal/models"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing the same constraints as the GORM
// implementation (mandatory username, unique email).
func (r *InMemoryUserRepository) Create(user *models.User) error {
	if user.Account.Username == "" {
		return fmt.Errorf("%w: username is mandatory", apperr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user %s %w", user.Email, apperr.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns the user with the given email, if any.
func (r *InMemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s %w", email, apperr.ErrNotFound)
}

// GetByToken returns the user holding the given session token, if any.
func (r *InMemoryUserRepository) GetByToken(token string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Token == token {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with matching token %w", apperr.ErrNotFound)
}
