package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/roboexplore/backend/internal/config"
	"github.com/roboexplore/backend/internal/sim"
	"github.com/roboexplore/backend/internal/ws"
)

// CreateWorld spins up a world session for a level and issues the JWT
// the client presents when opening the websocket
func CreateWorld(manager *sim.WorldManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			LevelID  int `json:"level_id"`
			PlayerID int `json:"player_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.LevelID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level_id required"})
			return
		}

		worldToken, err := manager.CreateWorld(req.LevelID)
		if err != nil {
			log.Printf("[API] failed to create world for level %d: %v", req.LevelID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create world"})
			return
		}

		// Issue session JWT
		exp := time.Now().Add(time.Duration(cfg.SessionTimeoutMin) * time.Minute)
		claims := jwt.MapClaims{
			"world_token": worldToken,
			"player_id":   req.PlayerID,
			"exp":         exp.Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("[API] failed to sign session token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token":       signed,
			"world_token": worldToken,
			"expires_at":  exp.Unix(),
		})
	}
}

// GetWorld reports whether a world session is still live and its tick
func GetWorld(manager *sim.WorldManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		world, err := manager.GetWorld(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "world not found"})
			return
		}

		state := world.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"world_token": token,
			"status":      "active",
			"tick":        state.Tick,
			"clients":     ws.WorldHub.RoomSize(token),
		})
	}
}
