package models

// Theme, arayüz teması. Store'da "theme" key'i altında saklanır.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme, tema değerini kontrol eder.
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// SessionUser, oturumdaki kimlik. Reload sonrası devam edebilmesi için
// "current_user" key'i altında store'a yansıtılır.
//
// Admin oturumunda ID boştur — admin bir User kaydı değildir,
// environment'tan konfigüre edilen sabit hesaptır.
type SessionUser struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
