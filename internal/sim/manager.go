package sim

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/roboexplore/backend/internal/config"
	"github.com/roboexplore/backend/internal/levels"
)

// WorldManager owns every running world, keyed by world token.
type WorldManager struct {
	worlds map[string]*worldEntry
	rdb    *redis.Client // Redis client for snapshots and events
	db     *sqlx.DB      // SQL DB for levels and session records
	config *config.Config
	mu     sync.RWMutex
}

type worldEntry struct {
	world        *World
	levelID      int
	createdAt    time.Time
	lastActivity time.Time
}

// NewWorldManager creates a world manager. db and rdb may be nil in tests;
// persistence is then skipped.
func NewWorldManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *WorldManager {
	return &WorldManager{
		worlds: make(map[string]*worldEntry),
		rdb:    rdb,
		db:     db,
		config: cfg,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// CreateWorld loads a level, builds a world from its geometry and registers
// it under a fresh token.
func (wm *WorldManager) CreateWorld(levelID int) (string, error) {
	level, err := levels.Get(wm.db, levelID)
	if err != nil {
		return "", err
	}

	var geometry Geometry
	if err := json.Unmarshal(level.Data, &geometry); err != nil {
		return "", err
	}

	token := "world_" + generateToken(8)
	world := NewWorld(geometry)
	now := time.Now()

	wm.mu.Lock()
	wm.worlds[token] = &worldEntry{
		world:        world,
		levelID:      levelID,
		createdAt:    now,
		lastActivity: now,
	}
	wm.mu.Unlock()

	log.Printf("[WORLD] Created world %s from level %d", token, levelID)

	if wm.db != nil {
		expiresAt := now.Add(time.Duration(wm.config.WorldExpiryMinutes) * time.Minute)
		if _, err := wm.db.Exec(`INSERT INTO world_sessions (world_token, level_id, status, created_at, expires_at) VALUES ($1, $2, 'active', NOW(), $3)`,
			token, levelID, expiresAt); err != nil {
			log.Printf("[DB] Failed to create world_session for %s: %v", token, err)
		}
	}
	wm.saveWorldToRedis(token, world)

	return token, nil
}

// GetWorld retrieves a running world by token and marks it active.
func (wm *WorldManager) GetWorld(token string) (*World, error) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	entry, exists := wm.worlds[token]
	if !exists {
		return nil, errors.New("world not found")
	}
	entry.lastActivity = time.Now()
	return entry.world, nil
}

// RemoveWorld drops a world from the manager.
func (wm *WorldManager) RemoveWorld(token string) {
	wm.mu.Lock()
	delete(wm.worlds, token)
	wm.mu.Unlock()
}

// ActiveWorldCount returns the number of running worlds.
func (wm *WorldManager) ActiveWorldCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.worlds)
}

// SaveWorld persists a world's current snapshot to Redis.
func (wm *WorldManager) SaveWorld(token string) {
	wm.mu.RLock()
	entry, exists := wm.worlds[token]
	wm.mu.RUnlock()
	if !exists {
		return
	}
	wm.saveWorldToRedis(token, entry.world)
}

// saveWorldToRedis stores the world snapshot with the expiry TTL.
func (wm *WorldManager) saveWorldToRedis(token string, world *World) {
	if wm.rdb == nil {
		return
	}

	data, err := json.Marshal(world.Snapshot())
	if err != nil {
		log.Printf("[REDIS] Failed to marshal snapshot for %s: %v", token, err)
		return
	}
	key := "world:" + token + ":state"
	ttl := time.Duration(wm.config.WorldExpiryMinutes) * time.Minute
	if err := wm.rdb.SetEx(context.Background(), key, data, ttl).Err(); err != nil {
		log.Printf("[REDIS] Failed to save snapshot for %s: %v", token, err)
	}
}

// PublishEvent fans out a world event over the world_events channel for the
// websocket layer to broadcast.
func (wm *WorldManager) PublishEvent(eventType, token string, payload map[string]interface{}) {
	if wm.rdb == nil {
		return
	}

	event := map[string]interface{}{
		"type":        eventType,
		"world_token": token,
	}
	for k, v := range payload {
		event[k] = v
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[REDIS] Failed to marshal %s event for %s: %v", eventType, token, err)
		return
	}
	if err := wm.rdb.Publish(context.Background(), "world_events", data).Err(); err != nil {
		log.Printf("[REDIS] Failed to publish %s event for %s: %v", eventType, token, err)
	}
}

// StartExpiryChecker runs a background job that removes idle worlds.
func (wm *WorldManager) StartExpiryChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		wm.checkExpiredWorlds()
	}
}

// checkExpiredWorlds drops every world idle longer than the configured
// expiry and notifies clients.
func (wm *WorldManager) checkExpiredWorlds() {
	maxIdle := time.Duration(wm.config.WorldExpiryMinutes) * time.Minute
	cutoff := time.Now().Add(-maxIdle)

	wm.mu.Lock()
	var expired []string
	for token, entry := range wm.worlds {
		if entry.lastActivity.Before(cutoff) {
			expired = append(expired, token)
			delete(wm.worlds, token)
		}
	}
	wm.mu.Unlock()

	for _, token := range expired {
		log.Printf("[EXPIRY] World %s expired after %s idle", token, maxIdle)

		if wm.db != nil {
			if _, err := wm.db.Exec(`UPDATE world_sessions SET status='expired', completed_at=NOW() WHERE world_token=$1`, token); err != nil {
				log.Printf("[DB] Failed to mark world_session %s expired: %v", token, err)
			}
		}
		wm.PublishEvent("world_expired", token, map[string]interface{}{
			"message": "World expired due to inactivity.",
		})
	}
}
