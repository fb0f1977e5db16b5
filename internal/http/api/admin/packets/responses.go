package packets

// RESPONSES FOR /api/admin/*

type DisplayResponse struct {
	ID                 int     `json:"id"`
	DeviceID           *string `json:"device_id,omitempty"`
	Name               string  `json:"name"`
	Location           *string `json:"location,omitempty"`
	Paired             bool    `json:"paired"`
	AssignedPlaylistID *int    `json:"assigned_playlist_id,omitempty"`
	LastSeenAt         *string `json:"last_seen_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type ContentResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	DefaultDuration int    `json:"default_duration"`
	CreatedAt       string `json:"created_at"`
}

type PlaylistItemResponse struct {
	ID               int                     `json:"id"`
	ContentID        int                     `json:"content_id"`
	Position         int                     `json:"position"`
	Duration         *int                    `json:"duration,omitempty"`
	Transition       string                  `json:"transition"`
	TransitionMS     *int                    `json:"transition_duration_ms,omitempty"`
	TransitionEasing *string                 `json:"transition_easing,omitempty"`
	RecurrenceRuleID *int                    `json:"recurrence_rule_id,omitempty"`
	Content          *ContentResponse        `json:"content,omitempty"`
	RecurrenceRule   *RecurrenceRuleResponse `json:"recurrence_rule,omitempty"`
}

type PlaylistResponse struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Items       []PlaylistItemResponse `json:"items"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

type RecurrenceRuleResponse struct {
	ID         int     `json:"id"`
	Kind       string  `json:"kind"`
	DaysOfWeek []int   `json:"days_of_week,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Priority   int     `json:"priority"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
