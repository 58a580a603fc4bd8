package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "ludo-server/internal/api/http"
	"ludo-server/internal/api/ws"
	"ludo-server/internal/auth"
	"ludo-server/internal/config"
	"ludo-server/internal/room"
	"ludo-server/internal/store"

	// swagger packages
	_ "ludo-server/docs"

	"github.com/gin-gonic/gin"
)

// @title Ludo Room Server API
// @version 1.0
// @description Rooms, lobby and turn-based Ludo games over REST and WebSocket
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem)
	hub := ws.NewHub(rm, cfg.Origins())
	rm.SetBroadcaster(hub)
	go hub.Run(ctx)
	go rm.Janitor(ctx, cfg.SweepInterval(), cfg.RoomInactivity())

	sessions := auth.NewSessions(cfg.JWTSecret, cfg.SessionTTL())
	r := httpapi.NewRouter(rm, hub, sessions)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
