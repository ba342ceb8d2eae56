package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/mapty/internal/db"
	"github.com/alexanderramin/mapty/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the same behavioural checks against every implementation.
func storeContract(t *testing.T, newStore func(t *testing.T) KeyValueStore) {
	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "workouts")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "workouts", `[{"id":"1"}]`))

		got, err := s.Get(ctx, "workouts")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, got)
	})

	t.Run("set replaces prior value", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "workouts", "first"))
		require.NoError(t, s.Set(ctx, "workouts", "second"))

		got, err := s.Get(ctx, "workouts")
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "workouts", "x"))
		require.NoError(t, s.Set(ctx, "other", "y"))
		require.NoError(t, s.Remove(ctx, "workouts"))

		_, err := s.Get(ctx, "workouts")
		assert.ErrorIs(t, err, ErrNotFound)

		other, err := s.Get(ctx, "other")
		require.NoError(t, err)
		assert.Equal(t, "y", other, "remove must only touch its key")
	})

	t.Run("remove missing key is not an error", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Remove(context.Background(), "nope"))
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, func(t *testing.T) KeyValueStore {
		return NewSQLiteStore(testutil.NewTestDB(t))
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) KeyValueStore {
		return NewMemoryStore()
	})
}

func TestSQLiteStore_WithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	tx, err := database.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(tx).Set(ctx, "workouts", "pending"))
	require.NoError(t, tx.Rollback())

	_, err = NewSQLiteStore(database).Get(ctx, "workouts")
	assert.ErrorIs(t, err, ErrNotFound, "rolled back write must not be visible")
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapty.db")
	ctx := context.Background()

	first, err := db.OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(first).Set(ctx, "workouts", "[1,2,3]"))
	require.NoError(t, first.Close())

	second, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := NewSQLiteStore(second).Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", got)
}

// A file-backed database shares state across pooled connections, so
// concurrent writers exercise WAL and the busy timeout.
func TestSQLiteStore_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.db")
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := NewSQLiteStore(database)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.Set(ctx, "workouts", string(rune('a'+i)))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMemoryStore_Len(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))
	assert.Equal(t, 2, m.Len())
}

var _ KeyValueStore = (*SQLiteStore)(nil)
var _ KeyValueStore = (*MemoryStore)(nil)
var _ db.DBTX = (*sql.DB)(nil)
