package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/roboexplore/backend/internal/ws"
)

// HandleWorldWebSocket handles real-time world communication
func HandleWorldWebSocket() gin.HandlerFunc {
	return ws.HandleWebSocket
}
