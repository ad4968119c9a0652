package realtime_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/realtime"
)

// fakeConn captura los eventos escritos sobre la conexión.
type fakeConn struct {
	mu     sync.Mutex
	events []realtime.Event
	fail   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("conexión rota")
	}
	ev, ok := v.(realtime.Event)
	if ok {
		c.events = append(c.events, ev)
	}
	return nil
}

func (c *fakeConn) received() []realtime.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]realtime.Event(nil), c.events...)
}

func (c *fakeConn) countOf(eventType string) int {
	n := 0
	for _, ev := range c.received() {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func TestBroadcast_LlegaATodasLasConexiones(t *testing.T) {
	hub := realtime.NewHub(nil)
	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(realtime.EventSaleCreated, map[string]string{"id": "s1"})

	require.Len(t, a.received(), 1)
	require.Len(t, b.received(), 1)
	assert.Equal(t, realtime.EventSaleCreated, a.received()[0].Type)
	assert.False(t, a.received()[0].Timestamp.IsZero(), "el hub debe poner timestamp")
}

func TestBroadcastExcept_ExcluyeAlEmisor(t *testing.T) {
	hub := realtime.NewHub(nil)
	sender, other := &fakeConn{}, &fakeConn{}
	hub.Register(sender)
	hub.Register(other)

	hub.BroadcastExcept(sender, realtime.EventProductUpdated, nil)

	assert.Empty(t, sender.received(), "el emisor no debe recibir su propio evento")
	assert.Len(t, other.received(), 1)
}

func TestAuthenticate_AnunciaUserOnlineAlResto(t *testing.T) {
	hub := realtime.NewHub(nil)
	alice, bob := &fakeConn{}, &fakeConn{}
	hub.Register(alice)
	hub.Register(bob)

	hub.Authenticate(alice, realtime.Identity{UserID: "u1", Name: "Alice"})

	assert.Zero(t, alice.countOf(realtime.EventUserOnline), "quien se autentica no recibe su propio user_online")
	require.Equal(t, 1, bob.countOf(realtime.EventUserOnline))

	id, ok := bob.received()[0].Data.(realtime.Identity)
	require.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "Alice", id.Name)
}

func TestUnregister_ConexionAutenticada_AnunciaUserOffline(t *testing.T) {
	hub := realtime.NewHub(nil)
	alice, bob := &fakeConn{}, &fakeConn{}
	hub.Register(alice)
	hub.Register(bob)
	hub.Authenticate(alice, realtime.Identity{UserID: "u1", Name: "Alice"})

	hub.Unregister(alice)

	assert.Equal(t, 1, bob.countOf(realtime.EventUserOffline))
	assert.Equal(t, 1, hub.ConnectedCount())
}

// Una conexión que nunca completó el handshake authenticate no genera presencia.
func TestUnregister_ConexionAnonima_NoAnunciaNada(t *testing.T) {
	hub := realtime.NewHub(nil)
	anon, bob := &fakeConn{}, &fakeConn{}
	hub.Register(anon)
	hub.Register(bob)

	hub.Unregister(anon)

	assert.Zero(t, bob.countOf(realtime.EventUserOffline))
}

// Fire-and-forget: una conexión con error de escritura no interrumpe el
// fan-out al resto.
func TestBroadcast_ConexionRota_NoInterrumpeElFanOut(t *testing.T) {
	hub := realtime.NewHub(nil)
	broken := &fakeConn{fail: true}
	healthy := &fakeConn{}
	hub.Register(broken)
	hub.Register(healthy)

	hub.Broadcast(realtime.EventSaleCreated, nil)

	assert.Len(t, healthy.received(), 1, "la conexión sana debe recibir el evento")
}

func TestConnectedCount(t *testing.T) {
	hub := realtime.NewHub(nil)
	assert.Zero(t, hub.ConnectedCount())

	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.ConnectedCount())

	hub.Unregister(a)
	assert.Equal(t, 1, hub.ConnectedCount())
}
