package account

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.DB) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return NewService(db, WithCost(bcrypt.MinCost)), db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s, _ := newTestService(t)

	require.NoError(t, s.Register("bob", "hunter2", "First pet?", "Rex"))
	require.ErrorIs(t, s.Register("bob", "x", "q", "a"), ErrUserExists)

	require.NoError(t, s.Authenticate("bob", "hunter2"))
	require.ErrorIs(t, s.Authenticate("bob", "wrong"), ErrBadCredentials)
	require.ErrorIs(t, s.Authenticate("alice", "hunter2"), ErrUserNotFound)

	q, err := s.Question("bob")
	require.NoError(t, err)
	require.Equal(t, "First pet?", q)
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestService(t)

	cases := []struct {
		name                         string
		user, pass, question, answer string
	}{
		{"no username", "", "p", "q", "a"},
		{"space in username", "bob smith", "p", "q", "a"},
		{"no password", "bob", "", "q", "a"},
		{"no question", "bob", "p", "  ", "a"},
		{"no answer", "bob", "p", "q", " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Register(tc.user, tc.pass, tc.question, tc.answer)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	names, err := s.List()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestResetPassword(t *testing.T) {
	s, _ := newTestService(t)
	require.NoError(t, s.Register("bob", "old", "First pet?", "Rex"))

	require.ErrorIs(t, s.ResetPassword("bob", "Fido", "new"), ErrBadCredentials)
	require.NoError(t, s.Authenticate("bob", "old"))

	require.NoError(t, s.ResetPassword("bob", "  rEX ", "new"))
	require.NoError(t, s.Authenticate("bob", "new"))
	require.ErrorIs(t, s.Authenticate("bob", "old"), ErrBadCredentials)

	require.ErrorIs(t, s.ResetPassword("bob", "rex", ""), ErrInvalidInput)
	require.ErrorIs(t, s.ResetPassword("nobody", "rex", "x"), ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	s, _ := newTestService(t)
	require.NoError(t, s.Register("bob", "old", "q", "a"))

	require.ErrorIs(t, s.ChangePassword("bob", "nope", "new"), ErrBadCredentials)
	require.NoError(t, s.ChangePassword("bob", "old", "new"))
	require.NoError(t, s.Authenticate("bob", "new"))
}

func TestRemoveCascades(t *testing.T) {
	s, db := newTestService(t)
	require.NoError(t, s.Register("bob", "pw", "q", "a"))
	require.NoError(t, s.Register("alice", "pw", "q", "a"))

	_, err := storage.NewAttemptRepository(db).Create("bob", cubeplay.Attempt{StartedAt: time.Now()})
	require.NoError(t, err)

	require.ErrorIs(t, s.Remove("bob", "wrong"), ErrBadCredentials)
	require.NoError(t, s.Remove("bob", "pw"))
	require.ErrorIs(t, s.Authenticate("bob", "pw"), ErrUserNotFound)

	n, err := storage.NewAttemptRepository(db).Count("bob")
	require.NoError(t, err)
	require.Zero(t, n)

	names, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, names)
}
