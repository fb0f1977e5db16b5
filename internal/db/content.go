package db

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

func CreateContent(name, typ, url string, defaultDuration, createdBy int) (model.Content, error) {
	var c model.Content
	query := `
	INSERT INTO content
	(name, type, url, default_duration, created_by, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, now(), now())
	RETURNING
	id, name, type, url, default_duration, created_by, created_at, updated_at;`

	if err := DB.Get(&c, query, name, typ, url, defaultDuration, createdBy); err != nil {
		log.Error().Err(err).Msg("failed to create content")
		return model.Content{}, err
	}
	return c, nil
}

func GetContentByID(id int) (model.Content, error) {
	var c model.Content
	query := `
	SELECT
	id, name, type, url, default_duration, created_by, created_at, updated_at
	FROM content
	WHERE id = $1;`

	err := DB.Get(&c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Content{}, sql.ErrNoRows
	}
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("failed to get content by id")
	}
	return c, err
}

func ListContent() ([]model.Content, error) {
	var all []model.Content
	query := `
	SELECT
	id, name, type, url, default_duration, created_by, created_at, updated_at
	FROM content
	ORDER BY id;
	`
	if err := DB.Select(&all, query); err != nil {
		log.Error().Err(err).Msg("failed to list content")
		return nil, err
	}
	return all, nil
}

func UpdateContent(id int, name, url *string, defaultDuration *int) error {
	_, err := DB.Exec(`
		UPDATE content
		SET
		name             = COALESCE($2, name),
		url              = COALESCE($3, url),
		default_duration = COALESCE($4, default_duration),
		updated_at       = now()
		WHERE id = $1;`,
		id, name, url, defaultDuration,
	)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("failed to update content")
	}
	return err
}

func DeleteContent(id int) error {
	_, err := DB.Exec(`DELETE FROM content WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("content_id", id).Msg("failed to delete content")
	}
	return err
}

// SearchContent filters by name substring, exact type (or MIME prefix when
// the type ends with '/'), and owner.
func SearchContent(names, types []string, createdBy *int) ([]model.Content, error) {
	var all []model.Content
	query := `
	SELECT
	id, name, type, url, default_duration, created_by, created_at, updated_at
	FROM content
	WHERE 1=1`

	args := []interface{}{}
	argCount := 0

	if len(names) > 0 {
		conds := []string{}
		for _, name := range names {
			if name == "" {
				continue
			}
			argCount++
			conds = append(conds, "name ILIKE $"+strconv.Itoa(argCount))
			args = append(args, "%"+name+"%")
		}
		if len(conds) > 0 {
			query += " AND (" + strings.Join(conds, " OR ") + ")"
		}
	}

	if len(types) > 0 {
		conds := []string{}
		for _, typ := range types {
			if typ == "" {
				continue
			}
			argCount++
			if strings.HasSuffix(typ, "/") {
				conds = append(conds, "type LIKE $"+strconv.Itoa(argCount))
				args = append(args, typ+"%")
			} else {
				conds = append(conds, "type = $"+strconv.Itoa(argCount))
				args = append(args, typ)
			}
		}
		if len(conds) > 0 {
			query += " AND (" + strings.Join(conds, " OR ") + ")"
		}
	}

	if createdBy != nil {
		argCount++
		query += ` AND created_by = $` + strconv.Itoa(argCount)
		args = append(args, *createdBy)
	}

	query += ` ORDER BY id;`

	if err := DB.Select(&all, query, args...); err != nil {
		log.Error().Err(err).Msg("failed to search content")
		return nil, err
	}
	return all, nil
}
