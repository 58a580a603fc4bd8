package room

import "fmt"

// Kind groups failures by how a client should react to them.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindIllegalAction   Kind = "illegal_action"
	KindInvalidArgument Kind = "invalid_argument"
)

// Error is returned by every Manager operation that rejects a command.
type Error struct {
	Kind     Kind              `json:"kind"`
	Reason   string            `json:"reason"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Reason so callers can compare against the sentinels below.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Reason == t.Reason
	}
	return false
}

// with returns a copy of e carrying a specific message and metadata.
func (e *Error) with(msg string, kv ...string) *Error {
	out := &Error{Kind: e.Kind, Reason: e.Reason, Message: msg}
	if len(kv) > 1 {
		out.Metadata = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			out.Metadata[kv[i]] = kv[i+1]
		}
	}
	return out
}

func (e *Error) withf(format string, args ...any) *Error {
	return e.with(fmt.Sprintf(format, args...))
}

var (
	ErrNotFound  = &Error{Kind: KindNotFound, Reason: "ROOM_NOT_FOUND", Message: "room not found"}
	ErrNotInRoom = &Error{Kind: KindNotFound, Reason: "NOT_IN_ROOM", Message: "session is not in a room"}

	ErrAlreadyInRoom    = &Error{Kind: KindConflict, Reason: "ALREADY_IN_ROOM", Message: "session is already in a room"}
	ErrColorTaken       = &Error{Kind: KindConflict, Reason: "COLOR_TAKEN", Message: "color is taken"}
	ErrRoomFull         = &Error{Kind: KindConflict, Reason: "ROOM_FULL", Message: "room is full"}
	ErrNoColorAvailable = &Error{Kind: KindConflict, Reason: "NO_COLOR_AVAILABLE", Message: "no color available"}

	ErrRoomNotJoinable   = &Error{Kind: KindIllegalAction, Reason: "ROOM_NOT_JOINABLE", Message: "room is not accepting players"}
	ErrNotAdmin          = &Error{Kind: KindIllegalAction, Reason: "NOT_ADMIN", Message: "only the admin can do this"}
	ErrNotEnoughPlayers  = &Error{Kind: KindIllegalAction, Reason: "NOT_ENOUGH_PLAYERS", Message: "at least two players are needed"}
	ErrPlayersNotReady   = &Error{Kind: KindIllegalAction, Reason: "PLAYERS_NOT_READY", Message: "not every player is ready"}
	ErrNotYourTurn       = &Error{Kind: KindIllegalAction, Reason: "NOT_YOUR_TURN", Message: "not your turn"}
	ErrGameNotRunning    = &Error{Kind: KindIllegalAction, Reason: "GAME_NOT_RUNNING", Message: "no game in progress"}
	ErrIllegalMove       = &Error{Kind: KindIllegalAction, Reason: "ILLEGAL_MOVE", Message: "illegal move"}
	ErrGameAlreadyActive = &Error{Kind: KindIllegalAction, Reason: "GAME_ALREADY_STARTED", Message: "game already started"}

	ErrInvalidName     = &Error{Kind: KindInvalidArgument, Reason: "INVALID_NAME", Message: "name must be 1-20 characters"}
	ErrInvalidColor    = &Error{Kind: KindInvalidArgument, Reason: "INVALID_COLOR", Message: "unknown color"}
	ErrInvalidCapacity = &Error{Kind: KindInvalidArgument, Reason: "INVALID_CAPACITY", Message: "capacity must be between 2 and 4"}
	ErrUnknownCommand  = &Error{Kind: KindInvalidArgument, Reason: "UNKNOWN_COMMAND", Message: "unknown command"}
)
