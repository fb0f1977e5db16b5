package model

import "time"

type Playlist struct {
	ID          int            `db:"id"           json:"id"`
	Name        string         `db:"name"         json:"name"`
	Description *string        `db:"description"  json:"description,omitempty"`
	CreatedAt   time.Time      `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"   json:"updated_at"`
	CreatedBy   int            `db:"created_by"   json:"created_by"`
	Items       []PlaylistItem `json:"items,omitempty"`
}

// DefaultItemDuration is the hold time applied when an item carries none.
const DefaultItemDuration = 10

type PlaylistItem struct {
	ID               int             `db:"id"                     json:"id"`
	PlaylistID       int             `db:"playlist_id"            json:"playlist_id"`
	ContentID        int             `db:"content_id"             json:"content_id"`
	Position         int             `db:"position"               json:"position"`
	Duration         *int            `db:"duration"               json:"duration,omitempty"`
	Transition       string          `db:"transition"             json:"transition"`
	TransitionMS     *int            `db:"transition_duration_ms" json:"transition_duration_ms,omitempty"`
	TransitionEasing *string         `db:"transition_easing"      json:"transition_easing,omitempty"`
	RecurrenceRuleID *int            `db:"recurrence_rule_id"     json:"recurrence_rule_id,omitempty"`
	CreatedAt        time.Time       `db:"created_at"             json:"created_at"`
	CreatedBy        int             `db:"created_by"             json:"created_by"`
	Content          *Content        `db:"-"                      json:"content,omitempty"`
	RecurrenceRule   *RecurrenceRule `db:"-"                      json:"recurrence_rule,omitempty"`
}

// HoldDuration resolves the hold time in seconds: the item's own
// duration, then the attached content's default, then DefaultItemDuration.
func (it PlaylistItem) HoldDuration() int {
	if it.Duration != nil && *it.Duration > 0 {
		return *it.Duration
	}
	if it.Content != nil && it.Content.DefaultDuration > 0 {
		return it.Content.DefaultDuration
	}
	return DefaultItemDuration
}
