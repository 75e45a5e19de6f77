package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/roboexplore/backend/internal/config"
	"github.com/roboexplore/backend/internal/database"
	"github.com/roboexplore/backend/internal/geo"
	"github.com/roboexplore/backend/internal/levels"
	"github.com/roboexplore/backend/internal/sim"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	name := os.Getenv("LEVEL_NAME")
	if name == "" {
		name = "Demo Cavern"
		log.Printf("Using default level name: %s", name)
	}

	geometry := demoGeometry()
	data, err := json.Marshal(geometry)
	if err != nil {
		log.Fatalf("Failed to marshal level geometry: %v", err)
	}

	level, err := levels.Insert(db, name, data)
	if err != nil {
		log.Fatalf("Failed to insert level: %v", err)
	}

	log.Printf("✓ Level seeded successfully")
	log.Printf("  ID: %d", level.ID)
	log.Printf("  Name: %s", level.Name)
	log.Printf("  Rects: %d, Segments: %d, Circles: %d",
		len(geometry.Rects), len(geometry.Segments), len(geometry.Circles))
}

// demoGeometry builds a small enclosed cavern with a toggleable
// platform and a boulder to shoot at
func demoGeometry() sim.Geometry {
	return sim.Geometry{
		Spawn: geo.NewVec2(0, 40),
		Rects: []geo.Bounds2{
			// Outer shell: floor, ceiling and both walls
			geo.BoundsFromPoints(geo.NewVec2(-200, -20), geo.NewVec2(200, 0)),
			geo.BoundsFromPoints(geo.NewVec2(-200, 160), geo.NewVec2(200, 180)),
			geo.BoundsFromPoints(geo.NewVec2(-220, -20), geo.NewVec2(-200, 180)),
			geo.BoundsFromPoints(geo.NewVec2(200, -20), geo.NewVec2(220, 180)),
			// A ledge halfway up the right wall
			geo.BoundsFromPoints(geo.NewVec2(120, 60), geo.NewVec2(200, 72)),
		},
		Segments: []sim.Segment{
			// Ramp out of the pit
			{From: geo.NewVec2(-200, 0), To: geo.NewVec2(-120, 40)},
			// Toggleable platform over the middle gap
			{From: geo.NewVec2(-40, 80), To: geo.NewVec2(40, 80), Platform: true},
		},
		Circles: []geo.Circle{
			// Boulder resting near the right ledge
			geo.NewCircle(geo.NewVec2(80, 32), 32),
		},
	}
}
