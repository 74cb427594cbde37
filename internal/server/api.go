package server

import (
	"net/http"

	"github.com/Scrimzay/cookiewarriors/internal/types"
	"github.com/Scrimzay/cookiewarriors/internal/world"
	"github.com/gin-gonic/gin"
)

func catalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, world.CatalogView())
}

func stateHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, world.StateView(gameWorld.Snapshot(), gameWorld.Speed()))
	}
}

func startHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gameWorld.StartGame(); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, world.StateView(gameWorld.Snapshot(), gameWorld.Speed()))
	}
}

func menuHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gameWorld.ReturnToMenu(); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, world.StateView(gameWorld.Snapshot(), gameWorld.Speed()))
	}
}

func deployHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.DeployAction
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cookie, err := gameWorld.Deploy(req.X, req.Y)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": cookie.ID, "type": cookie.Archetype.ID, "x": cookie.X, "y": cookie.Y})
	}
}

func selectHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SelectAction
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		gameWorld.Select(req.CookieID)
		c.Status(http.StatusNoContent)
	}
}

func archetypeHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ArchetypeAction
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		gameWorld.SetSelectedArchetype(req.ArchetypeID)
		c.Status(http.StatusNoContent)
	}
}

func speedHandler(gameWorld *world.World) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SpeedAction
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := gameWorld.SetSpeed(req.Multiplier); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"speed": gameWorld.Speed()})
	}
}
