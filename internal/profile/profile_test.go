package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medic/supportbot/internal/models"
)

func TestMergeFieldLevel(t *testing.T) {
	cached := models.Profile{PlanName: "A"}
	fetched := models.Profile{ContractNumber: "123"}

	merged := Merge(cached, fetched)
	assert.Equal(t, "A", merged.PlanName)
	assert.Equal(t, "123", merged.ContractNumber)
}

func TestMergeFetchedWins(t *testing.T) {
	cached := models.Profile{NationalID: "30123456", FullName: "Ana", IsActive: models.Bool(false)}
	fetched := models.Profile{FullName: "Ana María", IsActive: models.Bool(true)}

	merged := Merge(cached, fetched)
	assert.Equal(t, "30123456", merged.NationalID)
	assert.Equal(t, "Ana María", merged.FullName)
	require.NotNil(t, merged.IsActive)
	assert.True(t, *merged.IsActive)

	// the merged flag must not alias the fetched one
	*fetched.IsActive = false
	assert.True(t, *merged.IsActive)
}

func TestMergeKeepsCachedFlag(t *testing.T) {
	merged := Merge(models.Profile{IsActive: models.Bool(false)}, models.Profile{PlanName: "B"})
	require.NotNil(t, merged.IsActive)
	assert.False(t, *merged.IsActive)
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	p, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.True(t, p.Empty())

	want := models.Profile{NationalID: "30123456", PlanName: "Plata", IsActive: models.Bool(true)}
	require.NoError(t, s.Set(ctx, "s1", want))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Delete(ctx, "s1"))
	assert.ErrorIs(t, s.Delete(ctx, "s1"), ErrNotFound)

	got, err = s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	require.NoError(t, s.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesFlag(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := models.Profile{IsActive: models.Bool(true)}
	require.NoError(t, s.Set(ctx, "s1", p))
	*p.IsActive = false

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, *got.IsActive)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s := NewRedisStore(RedisOptions{Addr: mr.Addr(), TTL: time.Hour})
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestRedisStoreTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s := NewRedisStore(RedisOptions{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, s.Set(context.Background(), "s1", models.Profile{NationalID: "30123456"}))
	assert.Equal(t, time.Minute, mr.TTL(redisKeyPrefix+"s1"))

	mr.FastForward(2 * time.Minute)
	got, err := s.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}
