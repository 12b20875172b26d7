// Package memory is a process-local backend for development and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"asura/tracker/internal/domain"
	"asura/tracker/internal/repository"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[string]domain.User{}, byEmail: map[string]string{}}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return "", repository.ErrAlreadyExists
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type StateRepository struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func NewStateRepository() *StateRepository {
	return &StateRepository{states: map[string][]byte{}}
}

func (r *StateRepository) Get(_ context.Context, userID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.states[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (r *StateRepository) Put(_ context.Context, userID string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = append([]byte(nil), data...)
	return nil
}

func (r *StateRepository) Seed(_ context.Context, userID string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[userID]; !ok {
		r.states[userID] = append([]byte(nil), data...)
	}
	return nil
}

// KeyValueRepository is a map-backed repository.KeyValueRepository.
type KeyValueRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKeyValueRepository() *KeyValueRepository {
	return &KeyValueRepository{data: map[string][]byte{}}
}

func (r *KeyValueRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *KeyValueRepository) Put(_ context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = append([]byte(nil), payload...)
	return nil
}

func (r *KeyValueRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
