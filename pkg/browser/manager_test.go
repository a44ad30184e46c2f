package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSessionRequiresInitialize(t *testing.T) {
	m := NewSessionManager()

	_, err := m.StartSession("jobs", SessionOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestCloseSessionMissingIsNotFound(t *testing.T) {
	m := NewSessionManager()

	err := m.CloseSession("gone")

	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Contains(t, err.Error(), `"gone"`)
}

func TestGetSessionMissingIsNotFound(t *testing.T) {
	m := NewSessionManager()

	_, err := m.GetSession("gone")

	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListSessionsOrderedByName(t *testing.T) {
	now := time.Now()
	m := NewSessionManager()
	m.sessions["zeta"] = &Session{Name: "zeta", CurrentURL: "https://example.com/z", CreatedAt: now, LastUsedAt: now}
	m.sessions["alpha"] = &Session{Name: "alpha", CurrentURL: "https://example.com/a", Headless: true, CreatedAt: now, LastUsedAt: now}

	infos := m.ListSessions()

	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.True(t, infos[0].Headless)
	assert.Equal(t, "https://example.com/a", infos[0].CurrentURL)
	assert.Equal(t, "zeta", infos[1].Name)
}

func TestHasSessions(t *testing.T) {
	m := NewSessionManager()
	assert.False(t, m.HasSessions())

	m.sessions["jobs"] = &Session{Name: "jobs"}
	assert.True(t, m.HasSessions())
}
