package server

import (
	"errors"
	"net/http"

	"github.com/Scrimzay/cookiewarriors/internal/logging"
	"github.com/Scrimzay/cookiewarriors/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func SetupRouter(gameWorld *world.World, broadcaster *world.Broadcaster, log zerolog.Logger, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware(log))
	if staticDir != "" {
		r.Static("/static", staticDir)
	}

	r.GET("/healthz", healthHandler(gameWorld, broadcaster))
	r.GET("/ws", HandleWebsocket(broadcaster, gameWorld, log))

	api := r.Group("/api")
	api.GET("/catalog", catalogHandler)
	api.GET("/state", stateHandler(gameWorld))
	api.POST("/start", startHandler(gameWorld))
	api.POST("/menu", menuHandler(gameWorld))
	api.POST("/deploy", deployHandler(gameWorld))
	api.POST("/select", selectHandler(gameWorld))
	api.POST("/archetype", archetypeHandler(gameWorld))
	api.POST("/speed", speedHandler(gameWorld))

	return r
}

func healthHandler(gameWorld *world.World, broadcaster *world.Broadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := gameWorld.Snapshot()
		arena := gameWorld.Arena()
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"gameStatus": s.Status,
			"running":    gameWorld.Running(),
			"clients":    broadcaster.Clients(),
			"layout":     gameWorld.Layout().Name,
			"arena":      gin.H{"width": arena.Width, "height": arena.Height},
		})
	}
}

// statusFor maps simulation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, world.ErrArchetypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, world.ErrNotPlaying), errors.Is(err, world.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, world.ErrOutOfArena), errors.Is(err, world.ErrInvalidSpeed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
