package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medic/supportbot/internal/engine"
	"github.com/medic/supportbot/internal/faq"
	"github.com/medic/supportbot/internal/hours"
	"github.com/medic/supportbot/internal/intent"
	"github.com/medic/supportbot/internal/lookup"
	"github.com/medic/supportbot/internal/models"
	"github.com/medic/supportbot/internal/profile"
)

func newTestService(t *testing.T, client lookup.Client) (*Service, *profile.MemoryStore) {
	t.Helper()
	h, err := hours.New(9, 18, "America/Argentina/Buenos_Aires", nil)
	require.NoError(t, err)
	router := engine.NewRouter(engine.Config{
		Hours: h,
		Channels: map[intent.Intent]engine.Channel{
			intent.Complaint: {Phone: "+54 11 2031-8064", WhatsApp: "5491120318064"},
		},
	}, intent.Default(), faq.Default())

	store := profile.NewMemoryStore()
	at := time.Date(2025, 10, 14, 10, 0, 0, 0, h.Location)
	return &Service{
		Router:     router,
		Profiles:   store,
		Transcript: NewMemoryTranscript(),
		Lookup:     client,
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return at },
	}, store
}

func TestHandleEmptyMessage(t *testing.T) {
	s, _ := newTestService(t, lookup.MockClient{})
	_, err := s.Handle(context.Background(), "s1", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestHandleAsksForIDWithoutLookup(t *testing.T) {
	calls := 0
	s, _ := newTestService(t, lookup.Func(func(context.Context, string) (models.Profile, error) {
		calls++
		return models.Profile{}, nil
	}))

	reply, err := s.Handle(context.Background(), "s1", "mi plan")
	require.NoError(t, err)
	assert.Equal(t, intent.MyPlan, reply.Action.Intent)
	require.Len(t, reply.Messages, 2)
	assert.Contains(t, reply.Messages[1], "Necesito tu DNI")
	assert.Zero(t, calls)
}

func TestHandleCapturesIDThenReportsStatus(t *testing.T) {
	var gotID string
	s, store := newTestService(t, lookup.Func(func(_ context.Context, id string) (models.Profile, error) {
		gotID = id
		return models.Profile{IsActive: models.Bool(true)}, nil
	}))
	ctx := context.Background()

	reply, err := s.Handle(ctx, "s1", "mi dni es 30.123.456")
	require.NoError(t, err)
	assert.Equal(t, `Perfecto, guardé tu DNI: 30.123.456. Podés preguntarme "mi plan" o "mi estado".`, reply.Messages[0])

	reply, err = s.Handle(ctx, "s1", "mi estado")
	require.NoError(t, err)
	assert.Equal(t, "30123456", gotID)
	assert.Equal(t, "🧾 Estado de cobertura para Socio:\n✅ ACTIVA y al día", reply.Messages[len(reply.Messages)-1])

	p, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "30123456", p.NationalID)
	require.NotNil(t, p.IsActive)
	assert.True(t, *p.IsActive)

	turns, err := s.History(ctx, "s1")
	require.NoError(t, err)
	require.NotEmpty(t, turns)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Equal(t, uint64(2), turns[len(turns)-1].Seq)
}

// A new ID replaces the cached one without clearing the rest of the profile.
func TestHandleLastIDWins(t *testing.T) {
	s, store := newTestService(t, lookup.MockClient{})
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", models.Profile{NationalID: "30123456", PlanName: "Plan Oro"}))

	reply, err := s.Handle(ctx, "s1", "mi dni es 28999111")
	require.NoError(t, err)
	assert.Equal(t, "Actualicé tu DNI a 28.999.111.", reply.Messages[0])

	p, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "28999111", p.NationalID)
	assert.Equal(t, "Plan Oro", p.PlanName)

	reply, err = s.Handle(ctx, "s1", "28999111")
	require.NoError(t, err)
	assert.Equal(t, "Ya tenía registrado tu DNI: 28.999.111.", reply.Messages[0])
}

func TestHandleLookupFailureKeepsProfile(t *testing.T) {
	s, store := newTestService(t, lookup.Func(func(context.Context, string) (models.Profile, error) {
		return models.Profile{}, errors.New("connection refused")
	}))
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", models.Profile{NationalID: "30123456"}))

	reply, err := s.Handle(ctx, "s1", "mi credencial")
	require.NoError(t, err)
	assert.Equal(t, "Tuvimos un problema consultando tu información. Intentá más tarde.", reply.Messages[len(reply.Messages)-1])

	p, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{NationalID: "30123456"}, p)
}

func TestHandleDiscardsStaleLookup(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s, store := newTestService(t, lookup.Func(func(context.Context, string) (models.Profile, error) {
		close(started)
		<-release
		return models.Profile{PlanName: "Plan Plata"}, nil
	}))
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", models.Profile{NationalID: "30123456"}))

	var (
		wg    sync.WaitGroup
		reply Reply
		err   error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		reply, err = s.Handle(ctx, "s1", "mi plan")
	}()

	<-started
	_, newerErr := s.Handle(ctx, "s1", "Tengo un reclamo")
	require.NoError(t, newerErr)
	close(release)
	wg.Wait()

	require.NoError(t, err)
	assert.Contains(t, reply.Messages[len(reply.Messages)-1], "Plan: Plan Plata")

	p, getErr := store.Get(ctx, "s1")
	require.NoError(t, getErr)
	assert.Empty(t, p.PlanName)
}

func TestLogout(t *testing.T) {
	s, store := newTestService(t, lookup.MockClient{})
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", models.Profile{NationalID: "30123456"}))

	require.NoError(t, s.Logout(ctx, "s1"))
	assert.ErrorIs(t, s.Logout(ctx, "s1"), profile.ErrNotFound)

	p, err := s.Profile(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, p.Empty())
}

func TestSessionStateIsReleased(t *testing.T) {
	s, _ := newTestService(t, lookup.MockClient{})
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("s%d", i)
		_, err := s.Handle(ctx, id, "hola")
		require.NoError(t, err)
		if i%2 == 0 {
			_ = s.Logout(ctx, id)
		}
	}
	assert.Empty(t, s.sessions)
}

// A lookup still in flight keeps its session entry so newer turns can mark
// it stale; the entry goes away once the lookup returns.
func TestSessionStateKeptWhileLookupInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s, _ := newTestService(t, lookup.Func(func(context.Context, string) (models.Profile, error) {
		close(started)
		<-release
		return models.Profile{PlanName: "Plan Plata"}, nil
	}))
	ctx := context.Background()
	require.NoError(t, s.Profiles.Set(ctx, "s1", models.Profile{NationalID: "30123456"}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Handle(ctx, "s1", "mi plan")
	}()
	<-started

	s.mu.Lock()
	held := len(s.sessions)
	s.mu.Unlock()
	assert.Equal(t, 1, held)

	close(release)
	<-done
	assert.Empty(t, s.sessions)
}

type failingSetStore struct {
	*profile.MemoryStore
	fail bool
}

func (f *failingSetStore) Set(ctx context.Context, sessionID string, p models.Profile) error {
	if f.fail {
		return errors.New("store unavailable")
	}
	return f.MemoryStore.Set(ctx, sessionID, p)
}

func TestHandleKeepsReplyWhenSaveFails(t *testing.T) {
	s, mem := newTestService(t, lookup.Func(func(context.Context, string) (models.Profile, error) {
		return models.Profile{IsActive: models.Bool(true)}, nil
	}))
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "s1", models.Profile{NationalID: "30123456"}))
	s.Profiles = &failingSetStore{MemoryStore: mem, fail: true}

	reply, err := s.Handle(ctx, "s1", "mi estado")
	require.NoError(t, err)
	assert.Equal(t, "🧾 Estado de cobertura para Socio:\n✅ ACTIVA y al día", reply.Messages[len(reply.Messages)-1])

	turns, err := s.History(ctx, "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, turns)

	p, err := mem.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, p.IsActive)
}
