package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: bir mesajı yazmak için maksimum bekleme süresi.
	writeWait = 10 * time.Second

	// pongWait: client'ın heartbeat göndermesi için beklenen maksimum süre.
	// Bu sürede heartbeat gelmezse bağlantı kopmuş sayılır.
	pongWait = 90 * time.Second

	// maxMessageSize: client'tan kabul edilen maksimum mesaj boyutu (byte).
	// Portal client'ları sadece heartbeat gönderir — küçük tutulur.
	maxMessageSize = 1024

	// sendBufferSize: her client'ın send channel buffer boyutu.
	// Buffer doluysa client yavaş demektir — disconnect edilir.
	sendBufferSize = 64
)

// Client inbound op'ları.
const (
	opHeartbeat    = "heartbeat"
	opHeartbeatAck = "heartbeat_ack"
)

// Client, tek bir WebSocket bağlantısını temsil eder.
// Her bağlantı için iki goroutine çalışır: ReadPump (inbound) ve
// WritePump (outbound) — gorilla/websocket aynı anda tek okuma ve tek
// yazma destekler, iki goroutine birbirini bloklamaz.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
	mu     sync.Mutex // conn.WriteMessage çağrılarını korur
}

// ReadPump, bağlantıdan gelen mesajları okur.
// Portal client'ları sadece heartbeat gönderir; başka her op loglanıp atlanır.
// Bağlantı kapanana kadar bloklar, kapanınca client'ı Hub'dan çıkarır.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for user %s: %v", c.userID, err)
		return
	}

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %s: %v", c.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[ws] invalid message from user %s: %v", c.userID, err)
			continue
		}

		switch event.Op {
		case opHeartbeat:
			// Heartbeat geldi — deadline'ı yenile ve ack gönder.
			if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				return
			}
			c.sendEvent(Event{Op: opHeartbeatAck})

		default:
			log.Printf("[ws] unknown op from user %s: %s", c.userID, event.Op)
		}
	}
}

// WritePump, Hub'dan send channel'a düşen mesajları bağlantıya yazar.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel kapatıldı — Hub client'ı çıkardı
			c.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// sendEvent, client'a tek bir event gönderir (Hub'ı bypass eder, seq atanmaz).
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %s: %v", c.userID, err)
		return
	}

	if err := c.writeMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[ws] failed to write event for user %s: %v", c.userID, err)
	}
}

// writeMessage, WebSocket'e mutex korumalı yazar — gorilla conn'a
// eşzamanlı yazma yasaktır.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
