package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lagplot/internal/rng"
	"github.com/roach88/lagplot/internal/store"
)

func TestHistory_RecordAndList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")

	for i, seed := range []string{"1", "2"} {
		out := filepath.Join(dir, "run"+seed+".svg")
		stdout, _, err := executeCommand(t, "render", "-o", out, "--good-seed", seed, "--history", db)
		require.NoError(t, err, "run %d", i)
		assert.Contains(t, stdout, "recorded run ")
	}

	stdout, _, err := executeCommand(t, "--format", "json", "history", "--history", db)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 2)

	// newest first
	assert.Equal(t, uint64(2), resp.Data[0].GoodSeed)
	assert.Equal(t, uint64(1), resp.Data[1].GoodSeed)
	assert.Equal(t, resp.Data[0].BadDigest, resp.Data[1].BadDigest)
	assert.NotEqual(t, resp.Data[0].GoodDigest, resp.Data[1].GoodDigest)
	assert.Equal(t, uint64(256), resp.Data[0].LCG.Modulus)
	assert.Equal(t, uint64(256), resp.Data[0].LCGPeriod)

	stdout, _, err = executeCommand(t, "history", "--history", db, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "500 points  lcg m=256 a=137 c=1 x0=1  pcg seed=2")
	assert.NotContains(t, stdout, "seed=1\n")
	assert.Equal(t, 3, strings.Count(stdout, "\n"))
}

// createHistory creates an empty history database and returns its path.
func createHistory(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "history.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	return db
}

func TestHistory_Empty(t *testing.T) {
	db := createHistory(t)

	stdout, _, err := executeCommand(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded")

	stdout, _, err = executeCommand(t, "--format", "json", "history", "--history", db)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, stdout)
}

func TestHistory_FromEnv(t *testing.T) {
	db := createHistory(t)
	t.Setenv("LAGPLOT_HISTORY_PATH", db)

	stdout, _, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, db)
}

func TestHistory_MissingDatabaseNotCreated(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "typo", "histroy.db")

	_, _, err := executeCommand(t, "history", "--history", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "does not exist")

	assert.NoFileExists(t, db)
	assert.NoDirExists(t, filepath.Join(dir, "typo"))
}

func TestHistory_ByIDAndDigest(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")

	for _, seed := range []string{"1", "2"} {
		out := filepath.Join(dir, "run"+seed+".svg")
		_, _, err := executeCommand(t, "render", "-o", out, "--points", "20", "--good-seed", seed, "--history", db)
		require.NoError(t, err)
	}
	out := filepath.Join(dir, "other.svg")
	_, _, err := executeCommand(t, "render", "-o", out, "--points", "20", "--lcg-seed", "5", "--good-seed", "3", "--history", db)
	require.NoError(t, err)

	all := listHistory(t, "--history", db)
	require.Len(t, all, 3)

	byID := listHistory(t, "--history", db, "--id", all[1].ID)
	require.Len(t, byID, 1)
	assert.Equal(t, all[1], byID[0])

	// Runs 1 and 2 share LCG parameters, so they share the bad digest.
	byDigest := listHistory(t, "--history", db, "--digest", all[1].BadDigest)
	require.Len(t, byDigest, 2)
	assert.Equal(t, uint64(1), byDigest[0].GoodSeed)
	assert.Equal(t, uint64(2), byDigest[1].GoodSeed)

	stdout, _, err := executeCommand(t, "history", "--history", db, "--digest", all[0].BadDigest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "x0=5")
	assert.Equal(t, 3, strings.Count(stdout, "\n"))
}

func listHistory(t *testing.T, args ...string) []store.Run {
	t.Helper()
	stdout, _, err := executeCommand(t, append([]string{"--format", "json", "history"}, args...)...)
	require.NoError(t, err)

	var resp struct {
		Data []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	return resp.Data
}

func TestHistory_LookupErrors(t *testing.T) {
	db := createHistory(t)

	_, _, err := executeCommand(t, "history", "--history", db, "--id", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = executeCommand(t, "history", "--history", db, "--id", "a", "--digest", "b")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_ShortDigestRow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "foreign.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = st.Record(context.Background(), store.Run{
		PointCount: 2,
		LCG:        rng.DefaultLCGParams(),
		GoodSource: rng.KindPCG,
		OutputPath: "x.png",
		BadDigest:  "abc",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := executeCommand(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "bad abc\n")
}

func TestShortDigest(t *testing.T) {
	assert.Equal(t, "", shortDigest(""))
	assert.Equal(t, "abc", shortDigest("abc"))
	assert.Equal(t, "0123456789ab", shortDigest("0123456789ab"))
	assert.Equal(t, "0123456789ab", shortDigest("0123456789abcdef"))
}

func TestHistory_NoDatabase(t *testing.T) {
	_, _, err := executeCommand(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no history database")
}
