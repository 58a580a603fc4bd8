package http

import (
	"errors"
	"log"
	"net/http"

	"ludo-server/internal/auth"
	"ludo-server/internal/game"
	"ludo-server/internal/room"

	"github.com/gin-gonic/gin"
)

// statusFor maps a room error kind to an HTTP status.
func statusFor(k room.Kind) int {
	switch k {
	case room.KindNotFound:
		return http.StatusNotFound
	case room.KindConflict:
		return http.StatusConflict
	case room.KindIllegalAction:
		return http.StatusUnprocessableEntity
	case room.KindInvalidArgument:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	var re *room.Error
	if !errors.As(err, &re) {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: &room.Error{Kind: "internal", Reason: "INTERNAL", Message: "internal error"}})
		return
	}
	c.JSON(statusFor(re.Kind), ErrorResponse{Error: re})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: &room.Error{
		Kind:    room.KindInvalidArgument,
		Reason:  "INVALID_REQUEST",
		Message: err.Error(),
	}})
}

// respond runs op for the caller's session and writes its result.
func respond(c *gin.Context, status int, op func(sessionID string) (room.Result, error)) {
	res, err := op(auth.SessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, res)
}

// @Summary Get or create a session
// @Description Returns the caller's session token, minting one if none was sent
// @Tags Session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /api/session [post]
func SessionHandler(rm *room.Manager, sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := auth.SessionID(c)
		tok := c.Writer.Header().Get(auth.TokenHeader)
		if tok == "" {
			var err error
			if tok, err = sessions.Issue(sid); err != nil {
				writeError(c, err)
				return
			}
		}
		resp := SessionResponse{SessionID: sid, Token: tok}
		if v, ok := rm.RoomBySession(sid); ok {
			resp.Room = &v
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary List open rooms
// @Description Rooms that are waiting for players and not full, oldest first
// @Tags Room
// @Produce json
// @Success 200 {array} room.View
// @Router /api/rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, rm.Rooms())
	}
}

// @Summary Create room
// @Description Create a room and seat the caller as its admin
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Room settings"
// @Success 201 {object} room.Result
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		respond(c, http.StatusCreated, func(sid string) (room.Result, error) {
			return rm.CreateRoom(sid, req.Name, game.Color(req.Color), req.Capacity)
		})
	}
}

// @Summary Get room by code
// @Tags Room
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} room.View
// @Failure 404 {object} ErrorResponse
// @Router /api/rooms/{code} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := rm.RoomByCode(c.Param("code"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// @Summary Join room
// @Description Seat the caller in a waiting room with the first free color
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body JoinRoomRequest true "Player name"
// @Success 200 {object} room.Result
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/rooms/{code}/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		respond(c, http.StatusOK, func(sid string) (room.Result, error) {
			return rm.JoinRoom(sid, c.Param("code"), req.Name)
		})
	}
}

// @Summary Current room
// @Description The room the caller is seated in
// @Tags Room
// @Produce json
// @Success 200 {object} room.View
// @Failure 404 {object} ErrorResponse
// @Router /api/room [get]
func CurrentRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := rm.RoomBySession(auth.SessionID(c))
		if !ok {
			writeError(c, room.ErrNotInRoom)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// @Summary Leave room
// @Tags Room
// @Produce json
// @Success 200 {object} room.Result
// @Failure 404 {object} ErrorResponse
// @Router /api/room/leave [post]
func LeaveRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, rm.LeaveRoom)
	}
}

// @Summary Change color
// @Tags Room
// @Accept json
// @Produce json
// @Param request body UpdateColorRequest true "New color"
// @Success 200 {object} room.Result
// @Failure 409 {object} ErrorResponse
// @Router /api/room/color [put]
func UpdateColorHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateColorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		respond(c, http.StatusOK, func(sid string) (room.Result, error) {
			return rm.UpdateColor(sid, game.Color(req.Color))
		})
	}
}

// @Summary Toggle ready
// @Tags Room
// @Produce json
// @Success 200 {object} room.Result
// @Router /api/room/ready [post]
func ToggleReadyHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, rm.ToggleReady)
	}
}

// @Summary Start game
// @Description Admin only; every other player must be ready
// @Tags Game
// @Produce json
// @Success 200 {object} room.Result
// @Failure 422 {object} ErrorResponse
// @Router /api/room/start [post]
func StartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, rm.StartGame)
	}
}

// @Summary Roll dice
// @Tags Game
// @Produce json
// @Success 200 {object} room.Result
// @Failure 422 {object} ErrorResponse
// @Router /api/room/roll [post]
func RollDiceHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, rm.RollDice)
	}
}

// @Summary Move token
// @Tags Game
// @Accept json
// @Produce json
// @Param request body MoveRequest true "Token to move"
// @Success 200 {object} room.Result
// @Failure 422 {object} ErrorResponse
// @Router /api/room/move [post]
func MoveTokenHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		respond(c, http.StatusOK, func(sid string) (room.Result, error) {
			return rm.MoveToken(sid, req.TokenID)
		})
	}
}

// @Summary Valid moves
// @Description Tokens the caller may move with the current dice; empty when it is not their turn
// @Tags Game
// @Produce json
// @Success 200 {object} room.Result
// @Router /api/room/valid-moves [get]
func ValidMovesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := rm.ValidMoves(auth.SessionID(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"validMoves": res.ValidMoves})
	}
}
