package models

import (
	"database/sql"
	"time"
)

// Round is one persisted hole: who played it and the final stroke counts.
type Round struct {
	ID            int            `db:"id" json:"id"`
	MatchID       string         `db:"match_id" json:"match_id"`
	Mode          string         `db:"mode" json:"mode"`
	Status        string         `db:"status" json:"status"`
	PlayerStrokes sql.NullInt64  `db:"player_strokes" json:"player_strokes,omitempty"`
	RivalStrokes  sql.NullInt64  `db:"rival_strokes" json:"rival_strokes,omitempty"`
	Winner        sql.NullString `db:"winner" json:"winner,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	CompletedAt   sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
}

// RoundShot is one recorded launch within a round.
type RoundShot struct {
	ID           int       `db:"id" json:"id"`
	MatchID      string    `db:"match_id" json:"match_id"`
	Seat         string    `db:"seat" json:"seat"`
	StrokeNumber int       `db:"stroke_number" json:"stroke_number"`
	DirX         float64   `db:"dir_x" json:"dir_x"`
	DirY         float64   `db:"dir_y" json:"dir_y"`
	Power        float64   `db:"power" json:"power"`
	Loft         float64   `db:"loft" json:"loft"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
