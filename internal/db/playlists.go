package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

const playlistItemColumns = `
	id, playlist_id, content_id, position, duration,
	transition, transition_duration_ms, transition_easing,
	recurrence_rule_id, created_at, created_by`

func CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (name, description, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, name, description, created_by, created_at, updated_at;
	`
	if err := DB.Get(&p, q, name, description, createdBy); err != nil {
		log.Error().Err(err).Msg("failed to create playlist")
		return model.Playlist{}, err
	}
	return p, nil
}

func GetPlaylistByID(id int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	SELECT id, name, description, created_by, created_at, updated_at
	FROM playlists
	WHERE id = $1;`
	if err := DB.Get(&p, q, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("playlist_id", id).Msg("failed to get playlist by id")
		}
		return model.Playlist{}, err
	}

	items, err := ListPlaylistItems(id)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

func ListPlaylists() ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `SELECT id, name, description, created_by, created_at, updated_at FROM playlists ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("failed to list playlists")
		return nil, err
	}

	for i := range out {
		items, err := ListPlaylistItems(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func UpdatePlaylist(id int, name, description *string) error {
	_, err := DB.Exec(`
		UPDATE playlists
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description,
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to update playlist")
	}
	return err
}

func DeletePlaylist(id int) error {
	_, err := DB.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to delete playlist")
	}
	return err
}

// NewPlaylistItem carries the insert fields for one playlist entry.
// Duration nil means the content's default duration applies at resolve
// time; Transition "" falls back to fade on the player.
type NewPlaylistItem struct {
	ContentID        int
	Position         int
	Duration         *int
	Transition       string
	TransitionMS     *int
	TransitionEasing *string
	RecurrenceRuleID *int
}

func AddItemToPlaylist(playlistID int, in NewPlaylistItem, createdBy int) (model.PlaylistItem, error) {
	var it model.PlaylistItem
	query := `
	INSERT INTO playlist_items
	(playlist_id, content_id, position, duration, transition,
	 transition_duration_ms, transition_easing, recurrence_rule_id,
	 created_at, created_by)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, now(), $9)
	RETURNING ` + playlistItemColumns + `;`

	if err := DB.Get(&it, query,
		playlistID, in.ContentID, in.Position, in.Duration, in.Transition,
		in.TransitionMS, in.TransitionEasing, in.RecurrenceRuleID, createdBy,
	); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to add item to playlist")
		return model.PlaylistItem{}, err
	}
	return it, nil
}

func UpdatePlaylistItem(itemID int, position, duration *int, transition *string, ruleID *int) error {
	_, err := DB.Exec(`
		UPDATE playlist_items
		SET
		position           = COALESCE($2, position),
		duration           = COALESCE($3, duration),
		transition         = COALESCE($4, transition),
		recurrence_rule_id = COALESCE($5, recurrence_rule_id)
		WHERE id = $1;`,
		itemID, position, duration, transition, ruleID,
	)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("failed to update playlist item")
	}
	return err
}

func RemovePlaylistItem(itemID int) error {
	_, err := DB.Exec(`DELETE FROM playlist_items WHERE id = $1;`, itemID)
	if err != nil {
		log.Error().Err(err).Int("item_id", itemID).Msg("failed to remove playlist item")
	}
	return err
}

// ListPlaylistItems loads a playlist's entries in position order with
// their content and recurrence rules attached.
func ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	var list []model.PlaylistItem
	const query = `
	SELECT ` + playlistItemColumns + `
	FROM playlist_items
	WHERE playlist_id = $1
	ORDER BY position;`

	if err := DB.Select(&list, query, playlistID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to list playlist items")
		return nil, err
	}
	if err := attachItemRelations(list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItemRelations batch-loads the content rows and recurrence rules
// the items reference.
func attachItemRelations(items []model.PlaylistItem) error {
	if len(items) == 0 {
		return nil
	}

	contentIDs := make([]int64, 0, len(items))
	ruleIDs := make([]int64, 0, len(items))
	for _, it := range items {
		contentIDs = append(contentIDs, int64(it.ContentID))
		if it.RecurrenceRuleID != nil {
			ruleIDs = append(ruleIDs, int64(*it.RecurrenceRuleID))
		}
	}

	var contents []model.Content
	if err := DB.Select(&contents, `
		SELECT id, name, type, url, default_duration, created_by, created_at, updated_at
		FROM content
		WHERE id = ANY($1);`, pq.Array(contentIDs)); err != nil {
		log.Error().Err(err).Msg("failed to load content for playlist items")
		return err
	}
	contentByID := make(map[int]*model.Content, len(contents))
	for i := range contents {
		contentByID[contents[i].ID] = &contents[i]
	}

	ruleByID := map[int]*model.RecurrenceRule{}
	if len(ruleIDs) > 0 {
		var rules []model.RecurrenceRule
		if err := DB.Select(&rules, `
			SELECT id, kind, days_of_week, start_time, end_time, start_date, end_date,
			       priority, is_active, created_by, created_at, updated_at
			FROM recurrence_rules
			WHERE id = ANY($1);`, pq.Array(ruleIDs)); err != nil {
			log.Error().Err(err).Msg("failed to load recurrence rules for playlist items")
			return err
		}
		for i := range rules {
			ruleByID[rules[i].ID] = &rules[i]
		}
	}

	for i := range items {
		items[i].Content = contentByID[items[i].ContentID]
		if items[i].RecurrenceRuleID != nil {
			items[i].RecurrenceRule = ruleByID[*items[i].RecurrenceRuleID]
		}
	}
	return nil
}

func ReorderPlaylistItems(playlistID int, itemIDs []int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// shift everything past the end first so unique positions never collide
	count := len(itemIDs)
	if _, err = tx.Exec(`
		UPDATE playlist_items
		   SET position = position + $1
		 WHERE playlist_id = $2;
	`, count, playlistID); err != nil {
		return err
	}

	for idx, itemID := range itemIDs {
		if _, err = tx.Exec(`
			UPDATE playlist_items
			   SET position = $1
			 WHERE id = $2
			   AND playlist_id = $3;
		`, idx+1, itemID, playlistID); err != nil {
			return err
		}
	}

	return nil
}

// GetPlaylistForDisplay returns the playlist assigned to the display,
// items included. sql.ErrNoRows when nothing is assigned.
func GetPlaylistForDisplay(displayID int) (model.Playlist, error) {
	var pid *int
	err := DB.Get(&pid, `
		SELECT assigned_playlist_id FROM displays
		WHERE id = $1;`,
		displayID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Playlist{}, sql.ErrNoRows
		}
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to get playlist for display")
		return model.Playlist{}, err
	}
	if pid == nil {
		return model.Playlist{}, sql.ErrNoRows
	}
	return GetPlaylistByID(*pid)
}
