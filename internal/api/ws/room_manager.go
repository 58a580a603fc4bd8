package ws

import "ludo-server/internal/room"

// RoomManager is the part of room.Manager the hub drives.
type RoomManager interface {
	Execute(sessionID string, cmd room.Command) (room.Result, error)
	RoomBySession(sessionID string) (room.View, bool)
}
