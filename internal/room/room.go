package room

import (
	"sync"
	"time"

	"ludo-server/internal/game"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

const (
	MinPlayers    = 2
	MaxPlayers    = 4
	MaxNameLength = 20
)

type Player struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     game.Color `json:"color"`
	Ready     bool       `json:"ready"`
	Admin     bool       `json:"admin"`
	JoinedAt  time.Time  `json:"joinedAt"`
	SessionID string     `json:"-"`
}

// Room is the authoritative state of one session. Every field is guarded by
// mu; code outside Manager only ever sees View copies.
type Room struct {
	ID           string
	Code         string
	AdminID      string
	Players      []Player
	Capacity     int
	Status       Status
	CreatedAt    time.Time
	LastActivity time.Time
	Game         *game.State

	mu     sync.Mutex
	seq    uint64
	closed bool
}

// View is an immutable snapshot of a Room, safe to share with transports.
// Seq is the number of the last notification emitted before the snapshot
// was taken; later notifications carry higher numbers.
type View struct {
	ID           string      `json:"id"`
	Code         string      `json:"code"`
	AdminID      string      `json:"adminId"`
	Players      []Player    `json:"players"`
	Capacity     int         `json:"capacity"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	LastActivity time.Time   `json:"lastActivity"`
	Game         *game.State `json:"game,omitempty"`
	Seq          uint64      `json:"seq"`
}

// view copies r. Caller holds r.mu.
func (r *Room) view() View {
	v := View{
		ID:           r.ID,
		Code:         r.Code,
		AdminID:      r.AdminID,
		Players:      append([]Player{}, r.Players...),
		Capacity:     r.Capacity,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		LastActivity: r.LastActivity,
		Seq:          r.seq,
	}
	if r.Game != nil {
		g := r.Game.Clone()
		v.Game = &g
	}
	return v
}

func (r *Room) playerIndex(sessionID string) int {
	for i := range r.Players {
		if r.Players[i].SessionID == sessionID {
			return i
		}
	}
	return -1
}

func (r *Room) colorHolder(c game.Color) int {
	for i := range r.Players {
		if r.Players[i].Color == c {
			return i
		}
	}
	return -1
}

// Store indexes live rooms by code and sessions by the room code they are
// bound to. Implementations must be safe for concurrent use; they are
// always called after the room lock, never before it.
type Store interface {
	GetRoom(code string) (*Room, bool)
	// InsertRoom adds r under r.Code and reports false if the code is taken.
	InsertRoom(r *Room) bool
	DeleteRoom(code string)
	Rooms() []*Room

	// BindSession maps sessionID to code and reports false if the session
	// is already bound.
	BindSession(sessionID, code string) bool
	SessionRoom(sessionID string) (string, bool)
	ReleaseSession(sessionID string)
}
