package geo

import "math"

// Deflection is the result of solving one moving circle against one static
// obstacle.
type Deflection struct {
	// Times is the time range of resting contact with the obstacle. Zero
	// means the start of the movement step, one the end. Skimming motion can
	// produce a wide or unbounded range.
	Times Interval `json:"-"`
	// Normal is the unit surface normal, pointing from the obstacle toward
	// the mover.
	Normal Vec2 `json:"normal"`
	// Deflected is true only when the remaining movement was actually
	// redirected. False means grazing contact that didn't alter movement.
	Deflected bool `json:"deflected"`
	// Position is the mover's center at the moment of first contact.
	Position Vec2 `json:"position"`
	// Remainder is the movement left to execute after Position, already
	// redirected when Deflected is set.
	Remainder Vec2 `json:"remainder"`
	// Source identifies which obstacle produced this result.
	Source ObstacleID `json:"source"`
}

// splitRemainder clips the deflection at its earliest valid time: Times must
// hold the final contact times, Position the starting position and Remainder
// the full movement. The contact position and leftover movement are written
// back in place. Returns false when no time falls inside [0,1], meaning no
// contact happened during the step.
func (d *Deflection) splitRemainder() bool {
	bounded := d.Times.Intersect(IntervalBetween(0, 1))
	t, ok := bounded.Min()
	if !ok {
		return false
	}
	d.Position = d.Position.Plus(d.Remainder.Times(t))
	d.Remainder = d.Remainder.Times(1 - t)
	return true
}

// calcDeflection finishes a deflection after splitRemainder: it decides
// whether the clipped remainder actually penetrates the surface and, if so,
// projects the penetrating component out. This is a pure slide, not a
// bounce; there is no restitution.
func (d *Deflection) calcDeflection() {
	coincidence := d.Remainder.Dot(d.Normal)
	if coincidence >= -Epsilon {
		// Moving away from or parallel to the surface: contact without
		// deflection.
		d.Deflected = false
		return
	}
	d.Deflected = true
	d.Remainder = d.Remainder.Plus(d.Normal.Times(-coincidence))
}

// TotalDeflection aggregates every obstacle's deflection for one movement
// step into a single authoritative contact.
type TotalDeflection struct {
	// FinalPosition is where the mover ends up after the slide-limited
	// remainder is applied.
	FinalPosition Vec2 `json:"final_position"`
	// Normals holds the unique surface normals active at the moment of first
	// contact (two normals within Epsilon of each other count as one).
	Normals []Vec2 `json:"normals"`
	// Deflections holds every deflection whose time range contains the
	// earliest contact time. The first entry is the one that caused the
	// contact.
	Deflections []Deflection `json:"deflections"`
}

// LimitMovementWithNormals strips out of movement every component that one of
// the given surface normals forbids. When normals fall on both sides of the
// movement direction the mover is wedged (a corner) and the result is zero.
//
// Note the two-sided test is a heuristic, not an exact contact solve: it is
// right for axis-aligned and shallow-angle geometry but can over-restrict
// very acute non-orthogonal corners.
func LimitMovementWithNormals(movement Vec2, normals []Vec2) Vec2 {
	onPos := false
	onNeg := false
	result := movement
	for _, normal := range normals {
		// A normal in the direction of travel can't restrict it. A
		// perpendicular one still can.
		if movement.Dot(normal) > Epsilon {
			continue
		}
		if movement.Cross(normal) < 0 {
			onPos = true
		} else {
			onNeg = true
		}
		result = result.Minus(normal.Times(normal.Dot(result)))
		if onPos && onNeg {
			return Vec2{}
		}
	}
	return result
}

// CombineDeflections merges the deflections produced against every obstacle
// in one step. It keeps the earliest actionable contact, collects every
// deflection simultaneously active at that time (corners), and slide-limits
// the winner's remainder by the full set of unique normals. Returns nil when
// nothing deflected the movement.
func CombineDeflections(items []Deflection) *TotalDeflection {
	// Find the deflection with the earliest actionable start time.
	soonestTime := math.Inf(1)
	soonestIndex := -1
	for index := range items {
		if !items[index].Deflected {
			continue
		}
		t, ok := items[index].Times.Min()
		if !ok {
			continue
		}
		t = math.Max(t, 0)
		if t < soonestTime {
			soonestTime = t
			soonestIndex = index
		}
	}
	if soonestIndex < 0 {
		return nil
	}

	winner := items[soonestIndex]
	normals := []Vec2{winner.Normal}
	active := make([]Deflection, 0, len(items))
	active = append(active, winner)
	for index := range items {
		if index == soonestIndex {
			continue
		}
		hit := items[index]
		if !hit.Times.Contains(soonestTime) {
			continue
		}
		unique := true
		for _, normal := range normals {
			if normal.Minus(hit.Normal).Magnitude() < Epsilon {
				unique = false
				break
			}
		}
		if unique {
			normals = append(normals, hit.Normal)
		}
		active = append(active, hit)
	}

	finalRemainder := LimitMovementWithNormals(winner.Remainder, normals)
	return &TotalDeflection{
		FinalPosition: winner.Position.Plus(finalRemainder),
		Normals:       normals,
		Deflections:   active,
	}
}
