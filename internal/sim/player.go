package sim

import "github.com/roboexplore/backend/internal/geo"

const (
	// PlayerRadius is the player's collision radius in world units.
	PlayerRadius = 8.0
	// PlayerSpeed is horizontal movement speed in world units per second.
	PlayerSpeed = 100.0
	// Gravity pulls along -Y in world units per second squared.
	Gravity = 600.0
	// JumpSpeed is the vertical launch speed of a jump.
	JumpSpeed = 260.0

	// groundAlignment is the minimum dot product between a contact normal and
	// +Y for the surface to count as ground (and the mirror case for ceilings).
	// 0.5 admits slopes up to 60 degrees.
	groundAlignment = 0.5
)

// Input is one frame of player intent.
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Jump  bool `json:"jump"`
}

// Player is the controllable entity: a circle under gravity that runs, jumps
// and slides along level geometry.
type Player struct {
	Position  geo.Vec2 `json:"position"`
	Velocity  geo.Vec2 `json:"velocity"`
	Radius    float64  `json:"radius"`
	OnGround  bool     `json:"on_ground"`
	OnCeiling bool     `json:"on_ceiling"`
}

func NewPlayer(spawn geo.Vec2) *Player {
	return &Player{Position: spawn, Radius: PlayerRadius}
}

// Update advances the player by dt seconds. Input intent and gravity build
// the desired movement; the shared sweep resolves it, and each reported
// contact normal is classified against gravity to set the on-ground and
// on-ceiling flags and cancel the velocity component the surface absorbed.
func (p *Player) Update(dt float64, input Input, cs *geo.CollisionSystem) {
	p.Velocity.Y -= Gravity * dt

	p.Velocity.X = 0
	if input.Left {
		p.Velocity.X -= PlayerSpeed
	}
	if input.Right {
		p.Velocity.X += PlayerSpeed
	}
	if input.Jump && p.OnGround {
		p.Velocity.Y = JumpSpeed
	}

	p.OnGround = false
	p.OnCeiling = false
	movement := p.Velocity.Times(dt)
	p.Position = SweepCircle(cs, p.Position, p.Radius, movement, func(normal geo.Vec2) {
		switch {
		case normal.Y > groundAlignment:
			p.OnGround = true
			if p.Velocity.Y < 0 {
				p.Velocity.Y = 0
			}
		case normal.Y < -groundAlignment:
			p.OnCeiling = true
			if p.Velocity.Y > 0 {
				p.Velocity.Y = 0
			}
		}
	})
}
