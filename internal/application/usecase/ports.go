package usecase

// Broadcaster puerto de publicación de eventos realtime. Lo implementa
// *realtime.Hub; el fan-out es fire-and-forget, por eso no devuelve error.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}
