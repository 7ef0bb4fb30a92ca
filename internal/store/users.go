package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/unifind/internal/model"
)

// CreateUser registers an account. Emails are unique regardless of case.
func (m *Memory) CreateUser(_ context.Context, in model.RegisterInput) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), m.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	key := emailKey(in.Email)
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[key]; ok {
		return nil, ErrEmailTaken
	}
	if m.users == nil {
		m.users = map[string]*account{}
	}

	u := model.User{ID: uuid.NewString(), Name: in.Name, Email: in.Email, Role: in.Role}
	m.users[key] = &account{user: u, hash: hash}
	return &u, nil
}

// Authenticate returns the user whose credentials match, or nil.
func (m *Memory) Authenticate(_ context.Context, email, password string) (*model.User, error) {
	m.mu.RLock()
	acc, ok := m.users[emailKey(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, nil
	}
	u := acc.user
	return &u, nil
}

// GetUserByEmail returns a user by email, or nil if there is none.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.users[emailKey(email)]
	if !ok {
		return nil, nil
	}
	u := acc.user
	return &u, nil
}
