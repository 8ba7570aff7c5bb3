// Package models, portalın domain modellerini (veri yapıları) tanımlar.
//
// Modeller hem store'a yazılan JSON'un hem de API'den dönen verinin şeklini
// belirler. JSON tag'leri tarayıcı tarafının beklediği camelCase isimlerle
// birebir aynıdır — store'daki kayıtlar eski localStorage formatıyla uyumlu.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// emailPattern, email şekil kontrolü. Kasıtlı olarak gevşek:
// boşluksuz local@domain.tld yeterli.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail, email'in kabul edilebilir şekilde olup olmadığını döner.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// User, kayıtlı bir portal kullanıcısı.
//
// Password düz metin olarak saklanır — bu portalın bilinçli (ve dokümante)
// bir sınırlamasıdır, güvenlik hedefi yok. API yanıtlarına asla çıkmaz;
// handler'lar her zaman Sanitized() kopyayı döner.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	JoinDate time.Time `json:"joinDate"`
	IsAdmin  bool      `json:"isAdmin"`
}

// Sanitized, password alanı temizlenmiş bir kopya döner.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// SignupRequest, kayıt formundan gelen veri.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, kayıt isteğini kontrol eder.
// Kurallar: isim boş olamaz, email şekli geçerli, şifre en az 6 karakter.
func (r *SignupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}

	r.Email = strings.TrimSpace(r.Email)
	if !ValidEmail(r.Email) {
		return fmt.Errorf("please enter a valid email")
	}

	if utf8.RuneCountInString(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	return nil
}

// LoginRequest, giriş formundan gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, giriş isteğini kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

// UserStats, admin panelindeki kullanıcı sayaçları.
type UserStats struct {
	TotalUsers  int `json:"totalUsers"`
	BannedUsers int `json:"bannedUsers"`
	ActiveUsers int `json:"activeUsers"`
}
