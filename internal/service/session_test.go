package service

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"venturas/murmur-api/db"
	"venturas/murmur-api/model"
	"venturas/murmur-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	return gdb
}

// Fast parameters so tests don't spend their time in argon2
func testArgon() *security.Argon {
	return &security.Argon{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	return NewSessionStore(newTestDB(t), testArgon())
}

func TestSessionCreateAndMatch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created, err := s.Create("user-1", "raw-token", "Mozilla/5.0", "10.0.0.1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// The raw token must never be stored as-is
	assert.NotContains(t, created.TokenHash, "raw-token")
	assert.True(t, created.Active)

	matched, err := s.Match("user-1", "raw-token")
	require.NoError(t, err)
	assert.Equal(t, created.ID, matched.ID)
	assert.Equal(t, "Mozilla/5.0", matched.DeviceInfo)
	assert.Equal(t, "10.0.0.1", matched.IPAddress)
}

func TestSessionMatchNoSessions(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Match("user-1", "raw-token")
	assert.ErrorIs(t, err, ErrNoSessions)
}

func TestSessionMatchTokenMismatch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Create("user-1", "raw-token", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = s.Match("user-1", "some-other-token")
	assert.ErrorIs(t, err, ErrTokenMismatch)
}

func TestSessionMatchCrossUserScoping(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Create("user-a", "token-a", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// A token minted for user A must never match when scoped to user B
	_, err = s.Match("user-b", "token-a")
	assert.ErrorIs(t, err, ErrNoSessions)

	_, err = s.Create("user-b", "token-b", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = s.Match("user-b", "token-a")
	assert.ErrorIs(t, err, ErrTokenMismatch)
}

func TestSessionMatchIsOrderIndependent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	tokens := []string{"tok-0", "tok-1", "tok-2", "tok-3", "tok-4"}
	ids := make(map[string]string, len(tokens))

	for _, tok := range tokens {
		sess, err := s.Create("user-1", tok, "", "", time.Now().Add(time.Hour))
		require.NoError(t, err)
		ids[tok] = sess.ID
	}

	// Whichever token is presented, exactly its own session matches
	for _, tok := range tokens {
		matched, err := s.Match("user-1", tok)
		require.NoError(t, err)
		assert.Equal(t, ids[tok], matched.ID)
	}
}

func TestSessionMatchExpiredCleansUp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created, err := s.Create("user-1", "raw-token", "", "", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = s.Match("user-1", "raw-token")
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Cleanup on access: the expired row is deactivated as a side
	// effect
	var row model.Session
	require.NoError(t, s.DB.First(&row, "id = ?", created.ID).Error)
	assert.False(t, row.Active)

	_, err = s.Match("user-1", "raw-token")
	assert.ErrorIs(t, err, ErrNoSessions)
}

func TestSessionTouchDoesNotExtendExpiry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	expiresAt := time.Now().Add(time.Hour)

	created, err := s.Create("user-1", "raw-token", "", "", expiresAt)
	require.NoError(t, err)

	require.NoError(t, s.Touch("user-1", created.ID))

	var row model.Session
	require.NoError(t, s.DB.First(&row, "id = ?", created.ID).Error)
	assert.WithinDuration(t, expiresAt, row.ExpiresAt, time.Second)
	assert.True(t, row.LastUsed.After(created.LastUsed) || row.LastUsed.Equal(created.LastUsed))
}

func TestSessionDeactivateAll(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Create("user-1", "tok-1", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = s.Create("user-1", "tok-2", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)
	other, err := s.Create("user-2", "tok-3", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.DeactivateAll("user-1"))

	_, err = s.Match("user-1", "tok-1")
	assert.ErrorIs(t, err, ErrNoSessions)
	_, err = s.Match("user-1", "tok-2")
	assert.ErrorIs(t, err, ErrNoSessions)

	// Another user's sessions stay untouched
	matched, err := s.Match("user-2", "tok-3")
	require.NoError(t, err)
	assert.Equal(t, other.ID, matched.ID)
}

func TestSessionRevokeOwnership(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created, err := s.Create("user-1", "tok-1", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Foreign owner and unknown handle both read as Forbidden
	assert.ErrorIs(t, s.Revoke("user-2", created.ID), ErrForbidden)
	assert.ErrorIs(t, s.Revoke("user-1", "nonexistent"), ErrForbidden)

	require.NoError(t, s.Revoke("user-1", created.ID))

	_, err = s.Match("user-1", "tok-1")
	assert.ErrorIs(t, err, ErrNoSessions)

	// Already revoked, a second revoke doesn't find an active row
	assert.ErrorIs(t, s.Revoke("user-1", created.ID), ErrForbidden)
}

func TestSessionListActive(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	first, err := s.Create("user-1", "tok-1", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)
	second, err := s.Create("user-1", "tok-2", "", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.Revoke("user-1", first.ID))

	sessions, err := s.ListActive("user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, second.ID, sessions[0].ID)
}
