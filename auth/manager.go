package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"monetrix/database"
	models "monetrix/database/models_pkg"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when login fails. Deliberately the same
// for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUnauthorized is returned when a session token is missing, unknown or
// expired.
var ErrUnauthorized = errors.New("unauthorized")

// UserStore is the persistence surface the auth layer needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore holds issued tokens until they expire or are revoked
type SessionStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Manager handles registration, login and session token resolution. The
// rest of the application only consumes the user id it resolves.
type Manager struct {
	users          UserStore
	sessions       SessionStore
	sessionTTL     time.Duration
	minPasswordLen int
}

// NewManager creates a new auth manager
func NewManager(users UserStore, sessions SessionStore, sessionTTL time.Duration, minPasswordLen int) *Manager {
	return &Manager{
		users:          users,
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		minPasswordLen: minPasswordLen,
	}
}

// Register creates a new user account with a bcrypt-hashed password
func (m *Manager) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, database.NewValidationError("name", "required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, database.NewValidationError("email", "must be a valid email address")
	}
	if len(password) < m.minPasswordLen {
		return nil, database.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", m.minPasswordLen))
	}

	existing, err := m.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, database.NewValidationError("email", "already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := m.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := m.users.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := m.sessions.Put(ctx, token, user.ID, m.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Authenticate resolves a session token to a user id
func (m *Manager) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	userID, err := m.sessions.Lookup(ctx, token)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}

// Logout revokes a session token. Revoking an unknown token is not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Revoke(ctx, token)
}
