package packets

// REQUESTS FOR /api/admin/*

type CreateDisplayRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateDisplayRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

type PairDisplayRequest struct {
	DisplayID   int    `json:"display_id" binding:"required"`
	PairingCode string `json:"code" binding:"required"`
}

type AssignPlaylistRequest struct {
	PlaylistID int `json:"playlist_id" binding:"required"`
}

type UpdateContentRequest struct {
	Name            *string `json:"name"`
	URL             *string `json:"url"`
	DefaultDuration *int    `json:"default_duration"`
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AddPlaylistItemRequest struct {
	ContentID        int     `json:"content_id" binding:"required"`
	Position         *int    `json:"position"`
	Duration         *int    `json:"duration"`
	Transition       string  `json:"transition"`
	TransitionMS     *int    `json:"transition_duration_ms"`
	TransitionEasing *string `json:"transition_easing"`
	RecurrenceRuleID *int    `json:"recurrence_rule_id"`
}

type UpdatePlaylistItemRequest struct {
	Position         *int    `json:"position"`
	Duration         *int    `json:"duration"`
	Transition       *string `json:"transition"`
	RecurrenceRuleID *int    `json:"recurrence_rule_id"`
}

type ReorderPlaylistItemsRequest struct {
	ItemIDs []int `json:"item_ids" binding:"required"`
}

// CreateRecurrenceRuleRequest carries a rule definition. StartDate and
// EndDate use "2006-01-02"; StartTime and EndTime use "15:04".
type CreateRecurrenceRuleRequest struct {
	Kind       string  `json:"kind" binding:"required"`
	DaysOfWeek []int   `json:"days_of_week"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Priority   int     `json:"priority"`
	IsActive   *bool   `json:"is_active"`
}

type SetRuleActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
