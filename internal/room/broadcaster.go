package room

import "ludo-server/internal/shared"

// Broadcaster receives room notifications in the order they were produced.
// Publish is called with the room lock held and must not block on I/O.
type Broadcaster interface {
	Publish(n shared.Notification)
}

type noopBroadcaster struct{}

func (noopBroadcaster) Publish(shared.Notification) {}
