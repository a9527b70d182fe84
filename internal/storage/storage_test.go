package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeplay"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, name string) {
	t.Helper()
	require.NoError(t, NewUserRepository(db).Create(User{
		Username:     name,
		PasswordHash: "pw-" + name,
		Question:     "colour?",
		AnswerHash:   "ans-" + name,
	}))
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, len(migrations), v)

	require.NoError(t, db.MigrateUp())
	v, err = db.CurrentVersion()
	require.NoError(t, err)
	require.Equal(t, len(migrations), v)
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	missing, err := users.Get("nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	createUser(t, db, "bob")
	createUser(t, db, "alice")

	require.Error(t, users.Create(User{Username: "bob", PasswordHash: "x", Question: "q", AnswerHash: "a"}))

	u, err := users.Get("bob")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "pw-bob", u.PasswordHash)
	require.Equal(t, "colour?", u.Question)
	require.False(t, u.CreatedAt.IsZero())

	ok, err := users.Exists("alice")
	require.NoError(t, err)
	require.True(t, ok)

	list, err := users.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "alice", list[0].Username)

	require.NoError(t, users.UpdatePassword("bob", "new"))
	u, err = users.Get("bob")
	require.NoError(t, err)
	require.Equal(t, "new", u.PasswordHash)

	require.Error(t, users.UpdatePassword("nobody", "x"))
}

// zeroSource always draws 0, so a one-turn scramble is R0.
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

func scrambledSnapshot(t *testing.T) cubeplay.Snapshot {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := cubeplay.NewGame(
		cubeplay.WithClock(func() time.Time { return now }),
		cubeplay.WithScrambler(cubeplay.NewScrambler(
			cubeplay.WithSource(zeroSource{}),
			cubeplay.WithLength(1, 1),
		)),
	)
	g.Scramble()
	require.NoError(t, g.Rotate(cubeplay.Z))
	require.NoError(t, g.Turn(cubeplay.Column, 1, true))
	now = now.Add(42 * time.Second)
	g.Tick()
	return g.Snapshot()
}

func TestGameRepositorySaveAndLoad(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "bob")
	games := NewGameRepository(db)

	missing, err := games.GetByUser("bob")
	require.NoError(t, err)
	require.Nil(t, missing)

	snap := scrambledSnapshot(t)
	saved, err := NewSavedGame("bob", snap)
	require.NoError(t, err)

	id, err := games.Save(saved)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := games.GetByUser("bob")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, id, loaded.GameID)
	require.Equal(t, saved.CubeState, loaded.CubeState)
	require.Equal(t, saved.Moves, loaded.Moves)
	require.True(t, loaded.Timing)
	require.Equal(t, 42*time.Second, loaded.Elapsed)

	back, err := loaded.Snapshot()
	require.NoError(t, err)
	require.True(t, snap.Cube.Equal(&back.Cube))
	require.Equal(t, snap.Moves, back.Moves)
	require.Equal(t, snap.MoveCount, back.MoveCount)
	require.Equal(t, snap.ScramblerCount, back.ScramblerCount)
	require.True(t, snap.StartedAt.Equal(back.StartedAt))

	n, err := NewMoveRepository(db).Count(id)
	require.NoError(t, err)
	require.Equal(t, len(snap.Moves), n)
}

func TestGameRepositorySaveOverwrites(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "bob")
	games := NewGameRepository(db)

	first, err := NewSavedGame("bob", scrambledSnapshot(t))
	require.NoError(t, err)
	id1, err := games.Save(first)
	require.NoError(t, err)

	fresh, err := NewSavedGame("bob", cubeplay.NewGame().Snapshot())
	require.NoError(t, err)
	id2, err := games.Save(fresh)
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	loaded, err := games.GetByUser("bob")
	require.NoError(t, err)
	require.Empty(t, loaded.Moves)
	require.Nil(t, loaded.StartedAt)
	require.False(t, loaded.Timing)

	n, err := NewMoveRepository(db).Count(id1)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGameRepositoryKeepsSolvingFlag(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "bob")
	games := NewGameRepository(db)

	g := cubeplay.NewGame()
	require.NoError(t, g.Apply(cubeplay.TopRowRight))
	require.NoError(t, g.Apply(cubeplay.MiddleColumnDown))
	g.StartSolve()
	require.True(t, g.Step())

	saved, err := NewSavedGame("bob", g.Snapshot())
	require.NoError(t, err)
	_, err = games.Save(saved)
	require.NoError(t, err)

	loaded, err := games.GetByUser("bob")
	require.NoError(t, err)
	require.True(t, loaded.Solving)
	require.True(t, loaded.SolverUsed)

	// Stopping the solver and saving again clears the flag.
	g.StopSolving()
	saved, err = NewSavedGame("bob", g.Snapshot())
	require.NoError(t, err)
	_, err = games.Save(saved)
	require.NoError(t, err)

	loaded, err = games.GetByUser("bob")
	require.NoError(t, err)
	require.False(t, loaded.Solving)
	require.True(t, loaded.SolverUsed)

	back, err := loaded.Snapshot()
	require.NoError(t, err)
	restored := cubeplay.NewGame()
	require.NoError(t, restored.Restore(back))
	require.False(t, restored.Solving())
	require.Equal(t, 1, restored.HistoryLen())
}

func TestSavedGameRejectsCorruptState(t *testing.T) {
	g := &SavedGame{GameID: "x", CubeState: "OOO"}
	_, err := g.Snapshot()
	require.ErrorIs(t, err, cubeplay.ErrInvalidCubeState)
}

func TestAttemptRepository(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "bob")
	attempts := NewAttemptRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := attempts.Create("bob", cubeplay.Attempt{
			StartedAt:      base.Add(time.Duration(i) * time.Minute),
			Duration:       time.Duration(i+1) * time.Second,
			Moves:          10 + i,
			ScramblerMoves: 20,
			Solved:         i == 2,
		})
		require.NoError(t, err)
	}

	n, err := attempts.Count("bob")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	list, err := attempts.ListByUser("bob", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 12, list[0].Moves)
	require.True(t, list[0].Solved)
	require.Equal(t, 3*time.Second, list[0].Duration)
	require.True(t, base.Add(2*time.Minute).Equal(list[0].StartedAt))

	all, err := attempts.ListByUser("bob", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	got, err := attempts.Get(all[2].AttemptID)
	require.NoError(t, err)
	require.Equal(t, 10, got.Moves)

	missing, err := attempts.Get("nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDeleteUserCascades(t *testing.T) {
	db := openTestDB(t)
	createUser(t, db, "bob")

	saved, err := NewSavedGame("bob", scrambledSnapshot(t))
	require.NoError(t, err)
	id, err := NewGameRepository(db).Save(saved)
	require.NoError(t, err)
	_, err = NewAttemptRepository(db).Create("bob", cubeplay.Attempt{StartedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, NewUserRepository(db).Delete("bob"))

	g, err := NewGameRepository(db).GetByUser("bob")
	require.NoError(t, err)
	require.Nil(t, g)

	n, err := NewMoveRepository(db).Count(id)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = NewAttemptRepository(db).Count("bob")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLeaderboardRepository(t *testing.T) {
	db := openTestDB(t)
	lb := NewLeaderboardRepository(db)

	rank, err := lb.Submit("bob", 30*time.Second, 40)
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	rank, err = lb.Submit("alice", 20*time.Second, 35)
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	entries, err := lb.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "alice", entries[0].Name)
	require.Equal(t, 20*time.Second, entries[0].Time)
	require.Equal(t, "bob", entries[1].Name)

	for i := 0; i < 8; i++ {
		_, err := lb.Submit("carol", time.Duration(10+i)*time.Second, 50)
		require.NoError(t, err)
	}

	rank, err = lb.Submit("dave", 30*time.Second, 10)
	require.NoError(t, err)
	require.Zero(t, rank)

	rank, err = lb.Submit("erin", 25*time.Second, 10)
	require.NoError(t, err)
	require.Equal(t, 10, rank)

	entries, err = lb.List()
	require.NoError(t, err)
	require.Len(t, entries, 10)
	for _, e := range entries {
		require.NotEqual(t, "bob", e.Name)
	}
}
