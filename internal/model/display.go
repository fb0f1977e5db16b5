package model

import "time"

// Display represents a physical signage device in the system.
type Display struct {
	ID                 int        `db:"id"                   json:"id"`
	DeviceID           *string    `db:"device_id"            json:"device_id"`
	Name               string     `db:"name"                 json:"name"`
	Location           *string    `db:"location"             json:"location"`
	Paired             bool       `db:"paired"               json:"paired"`
	AssignedPlaylistID *int       `db:"assigned_playlist_id" json:"assigned_playlist_id"`
	LastSeenAt         *time.Time `db:"last_seen_at"         json:"last_seen_at"`
	CreatedAt          time.Time  `db:"created_at"           json:"created_at"`
	CreatedBy          int        `db:"created_by"           json:"created_by"`
	UpdatedAt          time.Time  `db:"updated_at"           json:"updated_at"`
}
