// Package store, kalıcı JSON key-value katmanıdır — tüm persistence'ın
// tek giriş noktası.
//
// Her koleksiyon tek bir key altında bütün olarak saklanır (users listesi
// "eip_users" altında tek JSON array gibi). Manager'lar her mutation'dan
// sonra koleksiyonun tamamını tekrar yazar; okuma ise sadece boot'ta
// (hydration) yapılır. Bu model bilinçli olarak basit: tek process, tek
// yazıcı — satır bazlı şema gerektirecek bir eşzamanlılık yok.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// keyPrefix, tüm kayıtların önüne eklenen namespace.
const keyPrefix = "eip_"

// Sabit store key'leri. Manager'lar koleksiyonlarını bu isimler altında tutar.
const (
	KeyUsers       = "users"
	KeyFiles       = "files"
	KeyTips        = "tips"
	KeyBroadcasts  = "broadcasts"
	KeySupport     = "support"
	KeyBanned      = "banned"
	KeyTheme       = "theme"
	KeyCurrentUser = "current_user"
)

// ActivityKey, kullanıcı bazlı aktivite kaydının key'ini üretir.
func ActivityKey(userID string) string {
	return "user_activity_" + userID
}

// Store, sqlite üzerindeki kv tablosunu saran adapter.
type Store struct {
	db *sql.DB
}

// New, constructor. db bağlantısı database.New ile açılmış olmalı
// (kv tablosu migration'la oluşur).
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load, key altındaki JSON değeri out'a deserialize eder.
//
// Politika (önemli):
//   - Key yoksa out'a DOKUNULMAZ — çağıran tarafın verdiği default geçerli
//     kalır (boş slice, sıfır struct vb.). Hata dönülmez.
//   - Değer bozuksa (JSON parse edilemiyorsa) kayıt silinir ve default'la
//     devam edilir. Bozuk bir değer uygulamayı boot'ta çökertmemeli.
func (s *Store) Load(ctx context.Context, key string, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE key = ?", keyPrefix+key,
	).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("[store] corrupt value for key %q, resetting to default: %v", key, err)
		if _, delErr := s.db.ExecContext(ctx,
			"DELETE FROM kv WHERE key = ?", keyPrefix+key,
		); delErr != nil {
			return fmt.Errorf("failed to reset corrupt key %q: %w", key, delErr)
		}
		return nil
	}

	return nil
}

// Save, değeri JSON'a serialize edip key altına yazar (upsert).
func (s *Store) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		keyPrefix+key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}

	return nil
}

// Delete, key'i siler. Olmayan key için no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM kv WHERE key = ?", keyPrefix+key,
	); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
