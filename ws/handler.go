package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ardaguler/eip/models"
)

// TokenValidator, WebSocket handler'ın oturum token'ı doğrulaması için
// kullandığı dar interface.
//
// services.AuthService'in tamamına ihtiyaç yok, sadece ValidateToken
// yeterli — ve services paketi zaten ws.EventPublisher kullandığı için
// ws → services bağımlılığı circular dependency yaratırdı. main'de
// authService bu interface'i implicit olarak karşılar.
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket'e yükseltir.
// Origin kontrolü HTTP katmanındaki CORS ayarından bağımsızdır;
// token doğrulaması zaten zorunlu olduğu için burada serbest bırakıldı.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, constructor.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, bağlantıyı WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Token URL query parameter olarak gelir (ws://server/ws?token=...) —
// tarayıcılar WebSocket upgrade sırasında custom header gönderemez,
// bu yüzden auth middleware kullanılamaz.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %s: %v", claims.Email, err)
		return
	}

	// Client'lar email ile anahtarlanır — koleksiyonların doğal anahtarı.
	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: claims.Email,
		send:   make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	// ReadPump mevcut goroutine'de çalışmalı — bağlantı kapanana kadar bloklar.
	go client.WritePump()
	client.ReadPump()
}
