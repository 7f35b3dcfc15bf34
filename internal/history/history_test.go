package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querygrid/internal/testutil"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func openTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"),
		WithIDGenerator(NewFixedGenerator(ids...)),
		WithClock(func() time.Time { return fixedTime }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestOpen_PragmasApplied(t *testing.T) {
	st := openTestStore(t)

	var mode string
	require.NoError(t, st.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var version int
	require.NoError(t, st.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t, "id-1", "id-2", "id-3")

	eq := `(cat OR dog) AND bark`
	first, err := st.Append(ctx, NewRecord(EquationToTable, "query.txt", eq, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, "id-1", first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, fixedTime, first.CreatedAt)

	_, err = st.Append(ctx, NewRecord(TableToEquation, "terms.csv", eq, 2, 3))
	require.NoError(t, err)
	_, err = st.Append(ctx, NewRecord(TableToEquation, "other.xlsx", "x", 1, 1))
	require.NoError(t, err)

	all, err := st.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"id-3", "id-2", "id-1"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, TableToEquation, all[0].Direction)
	assert.Equal(t, "other.xlsx", all[0].InputPath)
	assert.Equal(t, fixedTime, all[2].CreatedAt)

	limited, err := st.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	same, err := st.FindByHash(ctx, EquationHash(eq))
	require.NoError(t, err)
	require.Len(t, same, 2)
	assert.Equal(t, "query.txt", same[0].InputPath)
	assert.Equal(t, "terms.csv", same[1].InputPath)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	records, err := openTestStore(t).List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestAppend_RejectsUnknownDirection(t *testing.T) {
	st := openTestStore(t, "id-1")

	_, err := st.Append(context.Background(), NewRecord(Direction("sideways"), "x", "x", 1, 1))
	require.Error(t, err)
}

func TestAppend_DuplicateID(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	rec := NewRecord(EquationToTable, "x", "x", 1, 1)
	rec.ID = "same"
	_, err := st.Append(ctx, rec)
	require.NoError(t, err)
	_, err = st.Append(ctx, rec)
	require.Error(t, err)
}

func TestEquationHash(t *testing.T) {
	h := EquationHash("(a OR b)")
	assert.Len(t, h, 64)
	assert.Equal(t, h, EquationHash("(a OR b)"))
	assert.NotEqual(t, h, EquationHash("(a OR c)"))

	// NFC and NFD spellings hash identically
	assert.Equal(t, EquationHash("caf\u00e9"), EquationHash("cafe\u0301"))

	// line breaks from pretty printing do not change the hash
	assert.Equal(t, EquationHash("(a OR b) AND c"), EquationHash("(a OR b)\nAND c\n"))
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestAppend_TimestampsFollowClock(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewStepClock(fixedTime.Add(1500*time.Millisecond), time.Minute)
	st, err := Open(filepath.Join(t.TempDir(), "history.db"),
		WithIDGenerator(NewFixedGenerator("a", "b")),
		WithClock(clock.Now),
	)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.Append(ctx, NewRecord(EquationToTable, "a.txt", "a", 1, 1))
	require.NoError(t, err)
	_, err = st.Append(ctx, NewRecord(EquationToTable, "b.txt", "b", 1, 1))
	require.NoError(t, err)

	records, err := st.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Stored timestamps are truncated to whole seconds.
	assert.Equal(t, fixedTime.Add(time.Second+time.Minute), records[0].CreatedAt)
	assert.Equal(t, fixedTime.Add(time.Second), records[1].CreatedAt)
}
