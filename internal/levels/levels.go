package levels

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Level is a persisted level: its geometry lives in a JSONB column in world
// units, exactly as the simulation consumes it.
type Level struct {
	ID        int             `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Data      json.RawMessage `db:"data" json:"data"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Get fetches one level by id.
func Get(db *sqlx.DB, id int) (*Level, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	var level Level
	if err := db.Get(&level, `SELECT id, name, data, created_at, updated_at FROM levels WHERE id=$1`, id); err != nil {
		return nil, err
	}
	return &level, nil
}

// List returns every level, newest first.
func List(db *sqlx.DB) ([]Level, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	levels := []Level{}
	if err := db.Select(&levels, `SELECT id, name, data, created_at, updated_at FROM levels ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return levels, nil
}

// Insert stores a new level and returns it with its generated id.
func Insert(db *sqlx.DB, name string, data json.RawMessage) (*Level, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	var level Level
	err := db.Get(&level,
		`INSERT INTO levels (name, data, created_at, updated_at) VALUES ($1, $2::jsonb, NOW(), NOW()) RETURNING id, name, data, created_at, updated_at`,
		name, string(data))
	if err != nil {
		return nil, err
	}
	return &level, nil
}
