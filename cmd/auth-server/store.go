package main

import (
	"context"
	"strconv"
	"sync"

	"github.com/bbebig/authcore"
)

// memoryUserStore is a process-local account store for development and demos.
// Production deployments implement authcore.UserStore over their real user
// database instead.
type memoryUserStore struct {
	mu     sync.RWMutex
	nextID int
	byID   map[string]*authcore.UserRecord
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		nextID: 1,
		byID:   make(map[string]*authcore.UserRecord),
	}
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) FindByNickname(_ context.Context, nickname string) (*authcore.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Nickname == nickname {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) Create(_ context.Context, input authcore.CreateUserInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	s.byID[id] = &authcore.UserRecord{
		UserID:       id,
		Email:        input.Email,
		Nickname:     input.Nickname,
		Name:         input.Name,
		Birthdate:    input.Birthdate,
		PasswordHash: input.PasswordHash,
	}
	return id, nil
}
