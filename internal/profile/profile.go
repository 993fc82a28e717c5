// Package profile owns the merge policy for cached member profiles and the
// stores that keep them per session.
package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/medic/supportbot/internal/models"
)

var ErrNotFound = errors.New("profile not found")

// Store is the session store collaborator. Get returns an empty profile and
// no error for an unknown session.
type Store interface {
	Get(ctx context.Context, sessionID string) (models.Profile, error)
	Set(ctx context.Context, sessionID string, p models.Profile) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

// Merge overlays fetched on cached field by field: every field present in
// fetched wins, absent fields keep the cached value.
func Merge(cached, fetched models.Profile) models.Profile {
	out := cached
	if fetched.NationalID != "" {
		out.NationalID = fetched.NationalID
	}
	if fetched.FullName != "" {
		out.FullName = fetched.FullName
	}
	if fetched.PlanName != "" {
		out.PlanName = fetched.PlanName
	}
	if fetched.ContractNumber != "" {
		out.ContractNumber = fetched.ContractNumber
	}
	if fetched.IsActive != nil {
		v := *fetched.IsActive
		out.IsActive = &v
	}
	return out
}

// MemoryStore keeps profiles in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: map[string]models.Profile{}}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.profiles[sessionID]), nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[sessionID] = clone(p)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[sessionID]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, sessionID)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func clone(p models.Profile) models.Profile {
	if p.IsActive != nil {
		v := *p.IsActive
		p.IsActive = &v
	}
	return p
}
