package packets

// RESPONSES FOR /api/tv/*

// TVPlaylistItem is one resolved, eligible playlist entry as served to a
// display. Transition keeps the legacy string plus optional overrides;
// the player maps them into a config once at ingestion.
type TVPlaylistItem struct {
	ContentID        int     `json:"content_id"`
	URL              string  `json:"url"`
	Type             string  `json:"type"`
	Position         int     `json:"position"`
	Duration         int     `json:"duration"`
	Transition       string  `json:"transition"`
	TransitionMS     *int    `json:"transition_duration_ms,omitempty"`
	TransitionEasing *string `json:"transition_easing,omitempty"`
}

// TVPlaylistResponse is the poll payload: the display's eligible items,
// already filtered and ordered by the server at its current instant.
type TVPlaylistResponse struct {
	PlaylistName string           `json:"playlist_name"`
	Items        []TVPlaylistItem `json:"items"`
}
