package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, oturum token'ının (JWT) payload'u.
//
// models paketinde tanımlıdır çünkü birden fazla katman kullanır
// (services üretir, middleware ve ws doğrular) — her katman models'e
// bağımlı olabilir, circular dependency oluşmaz.
//
// Kullanıcılar email ile tanınır (koleksiyonların doğal anahtarı);
// admin oturumunda IsAdmin true'dur ve email konfigüre edilen admin email'idir.
type TokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}
