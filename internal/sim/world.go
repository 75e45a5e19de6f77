package sim

import (
	"sync"

	"github.com/roboexplore/backend/internal/geo"
)

// World is one running simulation: a collision system built from level
// geometry, the player, and any live bullets. All mutation goes through its
// lock so the websocket layer can feed input while the tick loop steps.
type World struct {
	mu        sync.Mutex
	cs        *geo.CollisionSystem
	obstacles *LevelObstacles
	player    *Player
	bullets   []*Bullet
	input     Input
	tick      uint64
}

// WorldState is the wire snapshot broadcast to clients every tick.
type WorldState struct {
	Tick    uint64   `json:"tick"`
	Player  Player   `json:"player"`
	Bullets []Bullet `json:"bullets"`
}

func NewWorld(geometry Geometry) *World {
	cs := geo.NewCollisionSystem()
	return &World{
		cs:        cs,
		obstacles: geometry.Build(cs),
		player:    NewPlayer(geometry.Spawn),
	}
}

// SetInput replaces the held input intent applied on subsequent steps.
func (w *World) SetInput(input Input) {
	w.mu.Lock()
	w.input = input
	w.mu.Unlock()
}

// Fire spawns a bullet from the player's center toward target.
func (w *World) Fire(target geo.Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	direction := target.Minus(w.player.Position)
	if direction.IsZero() {
		return
	}
	w.bullets = append(w.bullets, NewBullet(w.player.Position, direction))
}

// SetPlatformsEnabled toggles the level's drop-through platforms.
func (w *World) SetPlatformsEnabled(enabled bool) {
	w.mu.Lock()
	w.obstacles.SetPlatformsEnabled(w.cs, enabled)
	w.mu.Unlock()
}

// Step advances the simulation by dt seconds: the player resolves against
// the level under the held input, then each bullet flies or dies.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.player.Update(dt, w.input, w.cs)

	alive := w.bullets[:0]
	for _, bullet := range w.bullets {
		if bullet.Update(dt, w.cs) {
			alive = append(alive, bullet)
		}
	}
	w.bullets = alive

	w.tick++
}

// Snapshot copies the current state for serialization.
func (w *World) Snapshot() WorldState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := WorldState{
		Tick:    w.tick,
		Player:  *w.player,
		Bullets: make([]Bullet, len(w.bullets)),
	}
	for i, bullet := range w.bullets {
		state.Bullets[i] = *bullet
	}
	return state
}
