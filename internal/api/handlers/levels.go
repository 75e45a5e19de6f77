package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/roboexplore/backend/internal/levels"
	"github.com/roboexplore/backend/internal/sim"
)

// ListLevels returns all stored levels, newest first
func ListLevels(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := levels.List(db)
		if err != nil {
			log.Printf("[API] failed to list levels: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"levels": list})
	}
}

// GetLevel returns one level with its geometry data
func GetLevel(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
			return
		}

		level, err := levels.Get(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "level not found"})
				return
			}
			log.Printf("[API] failed to get level %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"level": level})
	}
}

// CreateLevel stores a new level after checking the geometry parses
func CreateLevel(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string          `json:"name"`
			Data json.RawMessage `json:"data"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		var geometry sim.Geometry
		if err := json.Unmarshal(req.Data, &geometry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level geometry"})
			return
		}

		level, err := levels.Insert(db, req.Name, req.Data)
		if err != nil {
			log.Printf("[API] failed to create level %q: %v", req.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"level": level})
	}
}
