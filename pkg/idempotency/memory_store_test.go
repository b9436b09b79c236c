package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Hour)
	s.now = func() time.Time { return now }

	resp, err := s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, err = s.Begin(ctx, "k1")
	assert.ErrorIs(t, err, ErrInProgress)

	require.NoError(t, s.Complete(ctx, "k1", Response{Status: 201, Body: []byte(`{"id":"x"}`)}))
	resp, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.Status)

	now = now.Add(2 * time.Hour)
	resp, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp, "la clave vencida se vuelve a reservar")

	require.NoError(t, s.Abort(ctx, "k1"))
	resp, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestMemoryStore_SweepsExpiredKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		_, err := s.Begin(ctx, k)
		require.NoError(t, err)
	}
	require.NoError(t, s.Complete(ctx, "b", Response{Status: 201}))
	assert.Equal(t, 3, s.size())

	now = now.Add(2 * time.Minute)
	_, err := s.Begin(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, 1, s.size(), "solo queda la clave recién reservada")

	resp, err := s.Begin(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
