// Package realtime implementa el broadcaster de eventos del POS: un registro
// en memoria de conexiones vivas con fan-out best-effort (at-most-once, sin
// persistencia). Un cliente desconectado simplemente pierde los eventos hasta
// que reconecta y refresca estado por los endpoints de lectura.
package realtime

import (
	"sync"
	"time"

	"github.com/tu-usuario/pos-pro/pkg/logger"
)

// Tipos de evento servidor→cliente.
const (
	EventUserOnline     = "user_online"
	EventUserOffline    = "user_offline"
	EventUserApproved   = "user_approved"
	EventProductUpdated = "product_updated"
	EventSaleCreated    = "sale_created"
)

// Mensajes cliente→servidor.
const (
	MsgAuthenticate = "authenticate"
)

// Event mensaje serializado hacia los clientes. Timestamp lo pone el hub.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Identity identidad anunciada por el handshake "authenticate" de la conexión
// (no sale del bearer token HTTP; el cliente la declara explícitamente).
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Conn es lo mínimo que el hub necesita de una conexión viva.
// *websocket.Conn de gofiber/contrib lo satisface; los tests usan fakes.
type Conn interface {
	WriteJSON(v interface{}) error
}

type client struct {
	conn     Conn
	mu       sync.Mutex // serializa escrituras sobre la misma conexión
	identity *Identity  // nil hasta el handshake authenticate
}

func (c *client) send(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(ev)
}

// Hub registro de conexiones vivas, estado propio del proceso.
// Se crea una sola vez en el arranque; cada conexión se registra al conectar
// y se elimina al desconectar.
type Hub struct {
	mu      sync.RWMutex
	clients map[Conn]*client
	log     *logger.Logger
}

// NewHub construye el hub vacío.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[Conn]*client),
		log:     log,
	}
}

// Register da de alta una conexión recién abierta (aún sin identidad).
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	h.clients[conn] = &client{conn: conn}
	h.mu.Unlock()
}

// Authenticate asocia la identidad declarada a la conexión y anuncia
// user_online al resto de conexiones.
func (h *Hub) Authenticate(conn Conn, id Identity) {
	h.mu.Lock()
	c, ok := h.clients[conn]
	if ok {
		c.identity = &id
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	if h.log != nil {
		h.log.Debug().Str("user_id", id.UserID).Msg("conexión realtime autenticada")
	}
	h.BroadcastExcept(conn, EventUserOnline, id)
}

// Unregister elimina la conexión del registro. Si estaba autenticada, anuncia
// user_offline al resto.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	c, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if !ok || c.identity == nil {
		return
	}
	h.BroadcastExcept(conn, EventUserOffline, *c.identity)
}

// Broadcast difunde un evento a todas las conexiones vivas. Fire-and-forget:
// un error de escritura no interrumpe el fan-out al resto.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.BroadcastExcept(nil, event, data)
}

// BroadcastExcept difunde a todas las conexiones menos la del emisor (usado
// por el relay cliente→servidor y por los anuncios de presencia).
func (h *Hub) BroadcastExcept(sender Conn, event string, data interface{}) {
	ev := Event{Type: event, Data: data, Timestamp: time.Now()}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for conn, c := range h.clients {
		if sender != nil && conn == sender {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(ev); err != nil && h.log != nil {
			h.log.Debug().Err(err).Str("event", event).Msg("fan-out a conexión fallida")
		}
	}
}

// ConnectedCount devuelve el número de conexiones vivas (para health/diagnóstico).
func (h *Hub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
