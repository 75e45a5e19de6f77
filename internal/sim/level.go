package sim

import "github.com/roboexplore/backend/internal/geo"

// Segment is one free-form collision edge in a level, already in world
// units. Platform marks edges gameplay may switch off (drop-through
// platforms).
type Segment struct {
	From     geo.Vec2 `json:"from"`
	To       geo.Vec2 `json:"to"`
	Platform bool     `json:"platform,omitempty"`
}

// Geometry is a level's collision shape as stored in the levels table:
// solid axis-aligned rectangles, free-form segments and circular pillars,
// plus the player spawn point.
type Geometry struct {
	Spawn    geo.Vec2      `json:"spawn"`
	Rects    []geo.Bounds2 `json:"rects"`
	Segments []Segment     `json:"segments"`
	Circles  []geo.Circle  `json:"circles,omitempty"`
}

// LevelObstacles holds the registry handles produced by building a
// Geometry, so gameplay can toggle platforms without rebuilding the level.
type LevelObstacles struct {
	All       []geo.ObstacleID
	Platforms []geo.ObstacleID
}

// Build registers every piece of level geometry with the collision system.
// Rectangles become their four boundary segments.
func (g Geometry) Build(cs *geo.CollisionSystem) *LevelObstacles {
	obstacles := &LevelObstacles{}
	add := func(shape geo.Obstacle, platform bool) {
		id := cs.AddObstacle(shape)
		obstacles.All = append(obstacles.All, id)
		if platform {
			obstacles.Platforms = append(obstacles.Platforms, id)
		}
	}

	for _, rect := range g.Rects {
		corners := [4]geo.Vec2{
			geo.NewVec2(rect.XMin, rect.YMin),
			geo.NewVec2(rect.XMax, rect.YMin),
			geo.NewVec2(rect.XMax, rect.YMax),
			geo.NewVec2(rect.XMin, rect.YMax),
		}
		for i := range corners {
			add(geo.NewLineSegment(corners[i], corners[(i+1)%4]), false)
		}
	}
	for _, segment := range g.Segments {
		add(geo.NewLineSegment(segment.From, segment.To), segment.Platform)
	}
	for _, circle := range g.Circles {
		add(circle, false)
	}
	return obstacles
}

// SetPlatformsEnabled toggles every platform edge at once.
func (lo *LevelObstacles) SetPlatformsEnabled(cs *geo.CollisionSystem, enabled bool) {
	for _, id := range lo.Platforms {
		cs.SetEnabled(id, enabled)
	}
}
