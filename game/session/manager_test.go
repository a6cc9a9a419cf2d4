package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridgames/chainreaction/game/engine"
	"github.com/gridgames/chainreaction/game/service"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager()

	match, err := m.Create(service.ModeTwoPlayer, engine.None)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.NotEmpty(t, match.ID)
	assert.Equal(t, service.ModeTwoPlayer, match.Mode)
	assert.Equal(t, engine.PlayerA, match.Engine.CurrentTurn())

	got, err := m.Get(match.ID)
	require.NoError(t, err)
	assert.Same(t, match, got)

	// Lookup is case-insensitive.
	got, err = m.Get(strings.ToUpper(match.ID))
	require.NoError(t, err)
	assert.Same(t, match, got)
}

func TestManager_GetErrors(t *testing.T) {
	m := NewManager()

	_, err := m.Get("")
	assert.ErrorIs(t, err, ErrInvalidMatchID)

	_, err = m.Get("nope")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestManager_UniqueIDs(t *testing.T) {
	m := NewManager()

	a, err := m.Create(service.ModeTwoPlayer, engine.None)
	require.NoError(t, err)
	b, err := m.Create(service.ModeVersusComputer, engine.PlayerB)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Count())
	assert.Len(t, m.List(), 2)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()
	match, err := m.Create(service.ModeTwoPlayer, engine.None)
	require.NoError(t, err)

	require.NoError(t, m.Delete(match.ID))
	assert.ErrorIs(t, m.Delete(match.ID), ErrMatchNotFound)

	_, err = m.Get(match.ID)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	m := NewManager()
	match, err := m.Create(service.ModeTwoPlayer, engine.None)
	require.NoError(t, err)

	before := match.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, m.UpdateLastAccessed(match.ID))
	assert.True(t, match.LastAccessedAt.After(before))

	assert.ErrorIs(t, m.UpdateLastAccessed("missing"), ErrMatchNotFound)
}

func TestManager_CleanupExpired(t *testing.T) {
	m := NewManager()
	stale, err := m.Create(service.ModeTwoPlayer, engine.None)
	require.NoError(t, err)
	fresh, err := m.Create(service.ModeTwoPlayer, engine.None)
	require.NoError(t, err)

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := m.CleanupExpired(time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Count())

	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
}
