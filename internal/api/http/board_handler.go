package http

import (
	"net/http"

	"ludo-server/internal/game"
	"ludo-server/internal/room"

	"github.com/gin-gonic/gin"
)

// BoardHandler returns the static board layout clients need to draw tokens.
// @Summary Board layout
// @Description Track length, safe cells and each color's start, gateway and star cell
// @Tags Board
// @Produce json
// @Success 200 {object} BoardResponse
// @Router /api/board [get]
func BoardHandler(c *gin.Context) {
	resp := BoardResponse{
		TrackLength: game.TrackLength,
		LaneStart:   game.LaneStart,
		Finished:    game.Finished,
		SafeCells:   game.SafeCells(),
		Limits: map[string]int{
			"minPlayers":     room.MinPlayers,
			"maxPlayers":     room.MaxPlayers,
			"maxNameLength":  room.MaxNameLength,
			"tokensPerColor": game.TokensPerColor,
		},
	}
	for _, col := range game.Colors {
		resp.Colors = append(resp.Colors, ColorLayout{
			Color:   string(col),
			Start:   game.StartCell(col),
			Gateway: game.GatewayCell(col),
			Star:    game.StarCell(col),
		})
	}
	c.JSON(http.StatusOK, resp)
}
