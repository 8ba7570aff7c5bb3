package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
	require.NoError(t, err)
	return New(db)
}

func insertRaw(t *testing.T, st *Store, key, value string) {
	t.Helper()
	_, err := st.db.Exec(`INSERT INTO kv(key, value) VALUES(?, ?)`, keyPrefix+key, value)
	require.NoError(t, err)
}

// ---- tests ----

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	in := []sample{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, st.Save(ctx, "samples", in))

	var out []sample
	require.NoError(t, st.Load(ctx, "samples", &out))
	assert.Equal(t, in, out)
}

func TestStore_LoadMissingKeyKeepsDefault(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	out := []sample{{Name: "default"}}
	require.NoError(t, st.Load(ctx, "nope", &out))

	// Key yoksa out değişmemeli
	assert.Equal(t, []sample{{Name: "default"}}, out)
}

func TestStore_SaveOverwrites(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "v", sample{Name: "first"}))
	require.NoError(t, st.Save(ctx, "v", sample{Name: "second"}))

	var out sample
	require.NoError(t, st.Load(ctx, "v", &out))
	assert.Equal(t, "second", out.Name)
}

func TestStore_LoadCorruptValueResets(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	insertRaw(t, st, "broken", "{not valid json")

	out := sample{Name: "default"}
	require.NoError(t, st.Load(ctx, "broken", &out))
	assert.Equal(t, "default", out.Name)

	// Bozuk kayıt silinmiş olmalı — tekrar yükleme de default'ta kalır
	var count int
	require.NoError(t, st.db.QueryRow(
		`SELECT COUNT(*) FROM kv WHERE key = ?`, keyPrefix+"broken",
	).Scan(&count))
	assert.Zero(t, count)
}

func TestStore_Delete(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "gone", sample{Name: "x"}))
	require.NoError(t, st.Delete(ctx, "gone"))

	var out sample
	require.NoError(t, st.Load(ctx, "gone", &out))
	assert.Empty(t, out.Name)

	// Olmayan key için Delete no-op
	require.NoError(t, st.Delete(ctx, "never-existed"))
}

func TestStore_KeysAreNamespaced(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, KeyTheme, "dark"))

	var raw string
	require.NoError(t, st.db.QueryRow(
		`SELECT key FROM kv LIMIT 1`,
	).Scan(&raw))
	assert.Equal(t, "eip_theme", raw)
}

func TestActivityKey(t *testing.T) {
	assert.Equal(t, "user_activity_u1", ActivityKey("u1"))
}
