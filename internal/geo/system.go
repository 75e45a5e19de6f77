package geo

import (
	"fmt"
	"log"
)

// Obstacle is the closed set of static shapes a circle mover can strike:
// LineSegment, Line, Point and Circle. New kinds are rare and deliberate, so
// the set is sealed inside this package.
type Obstacle interface {
	deflectCircle(mover Circle, movement Vec2) *Deflection
}

// Point is a dimensionless obstacle.
type Point Vec2

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) deflectCircle(mover Circle, movement Vec2) *Deflection {
	return mover.DeflectPoint(movement, Vec2(p))
}

func (s LineSegment) deflectCircle(mover Circle, movement Vec2) *Deflection {
	return mover.DeflectSegment(movement, s)
}

func (l Line) deflectCircle(mover Circle, movement Vec2) *Deflection {
	return mover.DeflectLine(movement, l)
}

func (c Circle) deflectCircle(mover Circle, movement Vec2) *Deflection {
	return mover.DeflectCircle(movement, c)
}

// ObstacleID is a stable handle into a CollisionSystem's registry. Handles
// stay valid across later inserts, removals and enable/disable calls; using
// a handle after its obstacle was removed is a programmer error and panics.
type ObstacleID struct {
	Index      int `json:"index"`
	Generation int `json:"generation"`
}

type obstacleSlot struct {
	shape      Obstacle
	generation int
	active     bool
	live       bool
}

// CollisionIterationMax bounds the solve-and-slide loop per movement
// resolution. Exceeding it is non-fatal: the loop stops at the best position
// computed so far and logs a diagnostic.
const CollisionIterationMax = 5

// CollisionSystem owns a set of static obstacles and resolves swept circle
// movement against all of them. It is a plain owned value: thread it through
// explicitly, never stash it in a global. Queries are read-only; mutation
// must not run concurrently with an in-flight query.
type CollisionSystem struct {
	slots []obstacleSlot
	free  []int
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

// AddObstacle registers a new obstacle, enabled, and returns its handle.
// Freed slots are reused with a bumped generation so stale handles can never
// silently alias a new obstacle.
func (cs *CollisionSystem) AddObstacle(shape Obstacle) ObstacleID {
	if n := len(cs.free); n > 0 {
		index := cs.free[n-1]
		cs.free = cs.free[:n-1]
		slot := &cs.slots[index]
		slot.shape = shape
		slot.generation++
		slot.active = true
		slot.live = true
		return ObstacleID{Index: index, Generation: slot.generation}
	}
	cs.slots = append(cs.slots, obstacleSlot{shape: shape, active: true, live: true})
	return ObstacleID{Index: len(cs.slots) - 1}
}

// RemoveObstacle deletes an obstacle. Its handle becomes invalid; every
// other handle stays usable.
func (cs *CollisionSystem) RemoveObstacle(id ObstacleID) {
	slot := cs.slot(id)
	slot.shape = nil
	slot.live = false
	slot.active = false
	cs.free = append(cs.free, id.Index)
}

// SetEnabled toggles an obstacle without removing its geometry. Disabled
// obstacles are skipped by every collision query.
func (cs *CollisionSystem) SetEnabled(id ObstacleID, enabled bool) {
	cs.slot(id).active = enabled
}

// IsEnabled reports whether the obstacle currently participates in queries.
func (cs *CollisionSystem) IsEnabled(id ObstacleID) bool {
	return cs.slot(id).active
}

func (cs *CollisionSystem) slot(id ObstacleID) *obstacleSlot {
	if id.Index < 0 || id.Index >= len(cs.slots) {
		panic(fmt.Sprintf("geo: obstacle handle out of range: %+v", id))
	}
	slot := &cs.slots[id.Index]
	if !slot.live || slot.generation != id.Generation {
		// A stale handle means a registry-lifetime bug in the caller, not a
		// runtime condition to recover from.
		panic(fmt.Sprintf("geo: stale obstacle handle: %+v", id))
	}
	return slot
}

// CollideCircleStep solves one movement step for a circle mover against
// every active obstacle and combines the results into a single contact.
// Returns nil when nothing deflects the movement this step.
func (cs *CollisionSystem) CollideCircleStep(position Vec2, radius float64, movement Vec2) *TotalDeflection {
	mover := Circle{Center: position, Radius: radius}
	var hits []Deflection
	for index := range cs.slots {
		slot := &cs.slots[index]
		if !slot.live || !slot.active {
			continue
		}
		d := slot.shape.deflectCircle(mover, movement)
		if d == nil {
			continue
		}
		d.Source = ObstacleID{Index: index, Generation: slot.generation}
		hits = append(hits, *d)
	}
	return CombineDeflections(hits)
}

// CollideCircle resolves a full frame of movement: it repeatedly steps with
// the remaining (slide-limited) movement, position advanced to each step's
// contact point, until the remainder is used up, no obstacle is hit, or the
// iteration cap is reached. The returned slice holds one TotalDeflection per
// contact step; the last entry's FinalPosition is the authoritative resting
// position. An empty slice means the movement completed unobstructed.
func (cs *CollisionSystem) CollideCircle(position Vec2, radius float64, movement Vec2) []TotalDeflection {
	var results []TotalDeflection
	for iteration := 0; iteration < CollisionIterationMax; iteration++ {
		total := cs.CollideCircleStep(position, radius, movement)
		if total == nil {
			return results
		}
		results = append(results, *total)
		contact := total.Deflections[0].Position
		movement = total.FinalPosition.Minus(contact)
		position = contact
		if movement.Magnitude() < Epsilon {
			return results
		}
	}
	log.Printf("[COLLIDE] hit collision iteration max (%d); keeping last computed position", CollisionIterationMax)
	return results
}
