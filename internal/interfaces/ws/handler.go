// Package ws adapta el canal realtime a websockets de Fiber.
// La identidad de la conexión no sale del bearer token HTTP: el cliente la
// declara con un mensaje "authenticate" después de conectar.
package ws

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-pro/internal/realtime"
	"github.com/tu-usuario/pos-pro/pkg/logger"
)

// inboundMessage mensaje cliente→servidor.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Handler atiende cada conexión websocket contra el hub.
type Handler struct {
	hub *realtime.Hub
	log *logger.Logger
}

// NewHandler construye el handler.
func NewHandler(hub *realtime.Hub, log *logger.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

// UpgradeGuard rechaza peticiones a /ws que no sean un upgrade websocket.
func UpgradeGuard(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve es el loop de una conexión: registra, procesa mensajes entrantes y
// da de baja al desconectar (lo que anuncia user_offline si estaba autenticada).
func (h *Handler) Serve(conn *websocket.Conn) {
	h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(conn)
		_ = conn.Close()
	}()

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// Desconexión o frame ilegible: se cierra la conexión.
			return
		}
		switch msg.Type {
		case realtime.MsgAuthenticate:
			var id realtime.Identity
			if err := json.Unmarshal(msg.Data, &id); err != nil || id.UserID == "" {
				continue
			}
			h.hub.Authenticate(conn, id)
		case realtime.EventProductUpdated, realtime.EventSaleCreated:
			// Relay opcional cliente→servidor: re-difunde a todos menos el emisor.
			var data interface{}
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				continue
			}
			h.hub.BroadcastExcept(conn, msg.Type, data)
		default:
			if h.log != nil {
				h.log.Debug().Str("type", msg.Type).Msg("mensaje realtime desconocido")
			}
		}
	}
}
