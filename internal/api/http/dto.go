package http

import "ludo-server/internal/room"

// CreateRoomRequest is the payload for POST /api/rooms.
type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=20"`
	Color    string `json:"color" binding:"required,oneof=red green yellow blue"`
	Capacity int    `json:"capacity" binding:"required,min=2,max=4"`
}

// JoinRoomRequest is the payload for POST /api/rooms/:code/join.
type JoinRoomRequest struct {
	Name string `json:"name" binding:"required,min=1,max=20"`
}

type UpdateColorRequest struct {
	Color string `json:"color" binding:"required,oneof=red green yellow blue"`
}

type MoveRequest struct {
	TokenID string `json:"tokenId" binding:"required"`
}

// SessionResponse carries the caller's session token.
type SessionResponse struct {
	SessionID string     `json:"sessionId"`
	Token     string     `json:"token"`
	Room      *room.View `json:"room,omitempty"`
}

// ErrorResponse wraps every failed request.
type ErrorResponse struct {
	Error *room.Error `json:"error"`
}

type BoardResponse struct {
	TrackLength int            `json:"trackLength"`
	LaneStart   int            `json:"laneStart"`
	Finished    int            `json:"finished"`
	SafeCells   []int          `json:"safeCells"`
	Colors      []ColorLayout  `json:"colors"`
	Limits      map[string]int `json:"limits"`
}

type ColorLayout struct {
	Color   string `json:"color"`
	Start   int    `json:"start"`
	Gateway int    `json:"gateway"`
	Star    int    `json:"star"`
}
