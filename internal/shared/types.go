package shared

// Kind names a room notification. Transports use it as the frame action.
type Kind string

const (
	KindRoomUpdated   Kind = "roomUpdated"
	KindSystemMessage Kind = "systemMessage"
	KindGameUpdated   Kind = "gameUpdated"
	KindGameWon       Kind = "gameWon"
	KindRoomClosed    Kind = "roomClosed"
)

// Notification is addressed to every connection subscribed to RoomCode.
// Seq increases by one per notification within a room.
type Notification struct {
	Seq      uint64      `json:"seq"`
	Kind     Kind        `json:"kind"`
	RoomCode string      `json:"roomCode"`
	Payload  interface{} `json:"payload"`
}

// SystemMessage is the payload of KindSystemMessage.
type SystemMessage struct {
	Event string `json:"event"`
	Text  string `json:"text"`
}
