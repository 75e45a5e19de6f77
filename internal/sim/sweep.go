package sim

import "github.com/roboexplore/backend/internal/geo"

// SweepCircle resolves one frame of circle movement against the collision
// system and returns the final position. Each iteration strips the movement
// components the previous iteration's contact normals forbid, solves one
// step, advances to the contact point and carries the leftover slide into the
// next iteration. Every surface normal encountered is reported through
// onContact (nil is fine for callers that only want the position).
//
// Callback-free callers get exactly the position CollideCircle would produce;
// this exists so entities that classify surfaces (ground, ceiling) share the
// same loop instead of growing their own variant.
func SweepCircle(cs *geo.CollisionSystem, position geo.Vec2, radius float64, movement geo.Vec2, onContact func(normal geo.Vec2)) geo.Vec2 {
	var normals []geo.Vec2
	for iteration := 0; iteration < geo.CollisionIterationMax; iteration++ {
		movement = geo.LimitMovementWithNormals(movement, normals)
		if movement.Magnitude() < geo.Epsilon {
			return position
		}
		total := cs.CollideCircleStep(position, radius, movement)
		if total == nil {
			return position.Plus(movement)
		}
		if onContact != nil {
			for _, normal := range total.Normals {
				onContact(normal)
			}
		}
		contact := total.Deflections[0].Position
		movement = total.FinalPosition.Minus(contact)
		position = contact
		normals = total.Normals
	}
	return position
}
