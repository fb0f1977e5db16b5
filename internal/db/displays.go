package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

const displayColumns = `
	id, device_id, name, location, paired, assigned_playlist_id,
	last_seen_at, created_by, created_at, updated_at`

func GetDisplayByID(id int) (model.Display, error) {
	var d model.Display
	err := DB.Get(&d, `
		SELECT `+displayColumns+`
		FROM displays
		WHERE id = $1
		`, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("display_id", id).Msg("failed to get display by id")
	}
	return d, err
}

func GetDisplayByDeviceID(deviceID string) (model.Display, error) {
	var d model.Display
	err := DB.Get(&d, `
		SELECT `+displayColumns+`
		FROM displays
		WHERE device_id = $1
		`, deviceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("device_id", deviceID).Msg("failed to get display by device id")
	}
	return d, err
}

func IsDisplayPairedByDeviceID(deviceID string) (bool, error) {
	var paired bool
	err := DB.Get(&paired, `
		SELECT paired
		FROM displays
		WHERE device_id = $1
		`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return paired, err
}

func ListDisplays() ([]model.Display, error) {
	var displays []model.Display
	err := DB.Select(&displays, `
		SELECT `+displayColumns+`
		FROM displays
		ORDER BY id
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list displays")
	}
	return displays, err
}

func CreateDisplay(name string, location *string, createdBy int) (model.Display, error) {
	var d model.Display
	q := `
	INSERT INTO displays (name, location, paired, created_by, created_at, updated_at)
	VALUES ($1, $2, false, $3, now(), now())
	RETURNING ` + displayColumns + `;`
	if err := DB.Get(&d, q, name, location, createdBy); err != nil {
		log.Error().Err(err).Msg("failed to create display")
		return model.Display{}, err
	}
	return d, nil
}

func UpdateDisplay(id int, name, location *string) error {
	_, err := DB.Exec(`
		UPDATE displays
		SET name = COALESCE($2, name),
		location = COALESCE($3, location),
		updated_at = now()
		WHERE id = $1
		`, id, name, location)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to update display")
	}
	return err
}

// PairDisplay binds a device to the display record and marks it paired.
func PairDisplay(id int, deviceID string) error {
	_, err := DB.Exec(`
		UPDATE displays
		SET device_id = $2,
		paired = TRUE,
		updated_at = now()
		WHERE id = $1
		`, id, deviceID)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to pair display")
	}
	return err
}

func AssignPlaylistToDisplay(displayID, playlistID int) error {
	res, err := DB.Exec(`
		UPDATE displays
		SET assigned_playlist_id = $2,
		updated_at = now()
		WHERE id = $1
		`, displayID, playlistID)
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to assign playlist to display")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func UnassignPlaylistFromDisplay(displayID int) error {
	_, err := DB.Exec(`
		UPDATE displays
		SET assigned_playlist_id = NULL,
		updated_at = now()
		WHERE id = $1
		`, displayID)
	if err != nil {
		log.Error().Err(err).Int("display_id", displayID).Msg("failed to unassign playlist from display")
	}
	return err
}

// TouchDisplayLastSeen records a heartbeat from the device.
func TouchDisplayLastSeen(deviceID string) error {
	res, err := DB.Exec(`
		UPDATE displays
		SET last_seen_at = now()
		WHERE device_id = $1
		`, deviceID)
	if err != nil {
		log.Error().Err(err).Str("device_id", deviceID).Msg("failed to touch display last seen")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteDisplay(id int) error {
	_, err := DB.Exec(`DELETE FROM displays WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int("display_id", id).Msg("failed to delete display")
	}
	return err
}

// GetDisplaysUsingPlaylist returns every display the playlist is assigned
// to, for change notifications.
func GetDisplaysUsingPlaylist(playlistID int) ([]model.Display, error) {
	var displays []model.Display
	err := DB.Select(&displays, `
		SELECT `+displayColumns+`
		FROM displays
		WHERE assigned_playlist_id = $1
		`, playlistID)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to get displays using playlist")
		return nil, err
	}
	return displays, nil
}
