package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/store"
)

// ---- helpers ----

func setupStore(t *testing.T) *store.Store {
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
	return store.New(db)
}

// withClaims, auth middleware'dan geçmiş gibi request context'ine claims koyar.
func withClaims(r *http.Request, claims *models.TokenClaims) *http.Request {
	ctx := context.WithValue(r.Context(), UserContextKey, claims)
	return r.WithContext(ctx)
}

// userSubject, kullanıcı ID'si taşıyan registered claims üretir.
func userSubject(id string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: id}
}
