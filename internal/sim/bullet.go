package sim

import "github.com/roboexplore/backend/internal/geo"

const (
	// BulletRadius is a projectile's collision radius in world units.
	BulletRadius = 5.0
	// BulletSpeed is a projectile's flight speed in world units per second.
	BulletSpeed = 300.0
)

// Bullet is a straight-line projectile. It ignores gravity and dies the
// moment anything deflects its flight.
type Bullet struct {
	Position geo.Vec2 `json:"position"`
	Velocity geo.Vec2 `json:"velocity"`
	Radius   float64  `json:"radius"`
}

// NewBullet spawns a bullet at position flying toward direction. A zero
// direction produces a zero velocity; the bullet then just sits until it
// expires against something.
func NewBullet(position, direction geo.Vec2) *Bullet {
	return &Bullet{
		Position: position,
		Velocity: direction.WithLength(BulletSpeed),
		Radius:   BulletRadius,
	}
}

// Update advances the bullet by dt seconds. Returns false when the bullet hit
// an obstacle and should be removed.
func (b *Bullet) Update(dt float64, cs *geo.CollisionSystem) bool {
	movement := b.Velocity.Times(dt)
	if results := cs.CollideCircle(b.Position, b.Radius, movement); len(results) > 0 {
		return false
	}
	b.Position = b.Position.Plus(movement)
	return true
}
