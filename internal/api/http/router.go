package http

import (
	"net/http"

	"ludo-server/internal/api/ws"
	"ludo-server/internal/auth"
	"ludo-server/internal/room"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, sessions *auth.Sessions) *gin.Engine {
	r := gin.Default()

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/board", BoardHandler)

	withSession := sessions.SessionMiddleware()

	// WebSocket for live room updates; the token comes in the query string.
	r.GET("/ws", withSession, hub.HandleWS)

	api := r.Group("/api")
	api.Use(withSession)
	{
		api.POST("/session", SessionHandler(rm, sessions))

		// --- ROOM DIRECTORY ---
		api.GET("/rooms", ListRoomsHandler(rm))
		api.POST("/rooms", CreateRoomHandler(rm))
		api.GET("/rooms/:code", GetRoomHandler(rm))
		api.POST("/rooms/:code/join", JoinRoomHandler(rm))

		// --- CALLER'S ROOM ---
		api.GET("/room", CurrentRoomHandler(rm))
		api.POST("/room/leave", LeaveRoomHandler(rm))
		api.PUT("/room/color", UpdateColorHandler(rm))
		api.POST("/room/ready", ToggleReadyHandler(rm))

		// --- GAME ---
		api.POST("/room/start", StartGameHandler(rm))
		api.POST("/room/roll", RollDiceHandler(rm))
		api.POST("/room/move", MoveTokenHandler(rm))
		api.GET("/room/valid-moves", ValidMovesHandler(rm))
	}

	return r
}
