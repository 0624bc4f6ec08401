package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file was not created")

	// reopening runs the migrations again
	store, err = Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file was not created in nested directory")
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.mc2048/scores.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".mc2048", "scores.db"), got)

	got, err = ExpandPath("/tmp/x.db")
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db", got)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct{ score, tile int }{{100, 64}, {50, 32}, {200, 128}} {
		_, err := store.SaveScore("4x4", s.score, s.tile)
		require.NoError(t, err)
	}
	_, err := store.SaveScore("5x5", 500, 256)
	require.NoError(t, err)

	scores, err := store.TopScores("4x4", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	require.Equal(t, 200, scores[0].Score)
	require.Equal(t, 128, scores[0].MaxTile)
	require.Equal(t, 100, scores[1].Score)
	require.Equal(t, 50, scores[2].Score)
	require.Equal(t, "4x4", scores[0].Board)
	require.False(t, scores[0].CreatedAt.IsZero())

	other, err := store.TopScores("5x5", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	require.Equal(t, 500, other[0].Score)
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		_, err := store.SaveScore("4x4", i*10, 16)
		require.NoError(t, err)
	}

	scores, err := store.TopScores("4x4", 5)
	require.NoError(t, err)
	require.Len(t, scores, 5)
	require.Equal(t, 190, scores[0].Score)

	scores, err = store.TopScores("4x4", 0)
	require.NoError(t, err)
	require.Len(t, scores, 10, "non-positive limit defaults to 10")
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("4x4")
	require.NoError(t, err)
	require.Zero(t, high)

	_, err = store.SaveScore("4x4", 1024, 128)
	require.NoError(t, err)
	_, err = store.SaveScore("4x4", 3000, 256)
	require.NoError(t, err)

	high, err = store.HighScore("4x4")
	require.NoError(t, err)
	require.Equal(t, 3000, high)
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore("4x4", 10, 8)
	require.NoError(t, err)
	_, err = store.SaveScore("3x3", 20, 8)
	require.NoError(t, err)

	require.NoError(t, store.ClearScores("4x4"))

	scores, err := store.TopScores("4x4", 10)
	require.NoError(t, err)
	require.Empty(t, scores)

	scores, err = store.TopScores("3x3", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
}

func TestStoreBoardStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.BoardStats("4x4")
	require.NoError(t, err)
	require.Zero(t, stats.GamesCount)
	require.True(t, stats.LastPlayed.IsZero())

	_, err = store.SaveScore("4x4", 100, 64)
	require.NoError(t, err)
	_, err = store.SaveScore("4x4", 300, 256)
	require.NoError(t, err)

	stats, err = store.BoardStats("4x4")
	require.NoError(t, err)
	require.Equal(t, 2, stats.GamesCount)
	require.Equal(t, 300, stats.HighScore)
	require.Equal(t, 200.0, stats.AvgScore)
	require.Equal(t, 256, stats.BestTile)
	require.False(t, stats.LastPlayed.IsZero())
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Board: "4x4", Strategy: "montecarlo", Playouts: 100, Workers: 8, Score: 20000, MaxTile: 2048, Moves: 1000, Duration: 2 * time.Second},
		{Board: "4x4", Strategy: "montecarlo", Playouts: 100, Workers: 8, Score: 10000, MaxTile: 1024, Moves: 600, Duration: time.Second},
		{Board: "4x4", Strategy: "random", Score: 1000, MaxTile: 128, Moves: 120, Duration: time.Millisecond},
		{Board: "3x3", Strategy: "random", Score: 50, MaxTile: 16, Moves: 20},
	}
	for _, r := range runs {
		id, err := store.SaveRun(r)
		require.NoError(t, err)
		require.Positive(t, id)
	}

	stats, err := store.RunStats("4x4")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	mc := stats[0]
	require.Equal(t, "montecarlo", mc.Strategy)
	require.Equal(t, 2, mc.Games)
	require.Equal(t, 15000.0, mc.AvgScore)
	require.Equal(t, 20000, mc.MaxScore)
	require.Equal(t, 2048, mc.BestTile)
	require.Equal(t, 800.0, mc.AvgMoves)

	require.Equal(t, "random", stats[1].Strategy)
	require.Equal(t, 1, stats[1].Games)

	recent, err := store.RecentRuns("4x4", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "random", recent[0].Strategy)
	require.Equal(t, time.Millisecond, recent[0].Duration)
	require.Equal(t, time.Second, recent[1].Duration)
	require.Equal(t, 8, recent[1].Workers)
}

func TestStoreBoards(t *testing.T) {
	store := openTestStore(t)

	boards, err := store.Boards()
	require.NoError(t, err)
	require.Empty(t, boards)

	_, err = store.SaveScore("5x5", 10, 8)
	require.NoError(t, err)
	_, err = store.SaveScore("4x4", 10, 8)
	require.NoError(t, err)
	_, err = store.SaveRun(Run{Board: "4x4", Strategy: "random"})
	require.NoError(t, err)
	_, err = store.SaveRun(Run{Board: "3x3", Strategy: "random"})
	require.NoError(t, err)

	boards, err = store.Boards()
	require.NoError(t, err)
	require.Equal(t, []string{"3x3", "4x4", "5x5"}, boards)
}

func TestBoardKey(t *testing.T) {
	require.Equal(t, "4x4", BoardKey(4))
	require.Equal(t, "6x6", BoardKey(6))
}
