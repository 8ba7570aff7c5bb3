package ws

// Op sabitleri — client'a giden event tipleri.
const (
	OpBroadcastNew  = "broadcast_new"  // yeni duyuru → tüm bağlı kullanıcılar
	OpSupportReply  = "support_reply"  // talebe yanıt → talebin sahibi
	OpSupportStatus = "support_status" // talep durumu değişti → talebin sahibi
)

// Event, WebSocket üzerinden gönderilen zarf.
// Seq hub tarafından atanır — client'lar sıra kontrolü yapabilir.
type Event struct {
	Op   string `json:"op"`
	Seq  int64  `json:"seq"`
	Data any    `json:"data"`
}

// SupportStatusData, OpSupportStatus event'inin payload'u.
type SupportStatusData struct {
	TicketID string `json:"ticketId"`
	Status   string `json:"status"`
}

// EventPublisher, service katmanının event yayınlamak için kullandığı
// interface. Service'ler Hub'ın concrete struct'ına değil buna bağımlıdır —
// testlerde sahte bir publisher (veya nil kontrolü) yeterli olur.
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToUser(userID string, event Event)
}
