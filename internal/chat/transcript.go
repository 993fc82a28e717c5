package chat

import (
	"context"
	"sync"

	"github.com/medic/supportbot/internal/models"
)

// Transcript keeps the ordered conversation of each session.
type Transcript interface {
	Append(ctx context.Context, turns ...models.Turn) error
	List(ctx context.Context, sessionID string) ([]models.Turn, error)
}

type MemoryTranscript struct {
	mu    sync.RWMutex
	turns map[string][]models.Turn
}

func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{turns: map[string][]models.Turn{}}
}

func (m *MemoryTranscript) Append(_ context.Context, turns ...models.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range turns {
		m.turns[t.SessionID] = append(m.turns[t.SessionID], t)
	}
	return nil
}

func (m *MemoryTranscript) List(_ context.Context, sessionID string) ([]models.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Turn, len(m.turns[sessionID]))
	copy(out, m.turns[sessionID])
	return out, nil
}
