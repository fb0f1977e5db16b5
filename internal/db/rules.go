package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

const ruleColumns = `
	id, kind, days_of_week, start_time, end_time, start_date, end_date,
	priority, is_active, created_by, created_at, updated_at`

func CreateRecurrenceRule(r model.RecurrenceRule) (model.RecurrenceRule, error) {
	var out model.RecurrenceRule
	const q = `
	INSERT INTO recurrence_rules
	(kind, days_of_week, start_time, end_time, start_date, end_date,
	 priority, is_active, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	RETURNING ` + ruleColumns + `;`
	if err := DB.Get(&out, q,
		r.Kind, r.DaysOfWeek, r.StartTime, r.EndTime, r.StartDate, r.EndDate,
		r.Priority, r.IsActive, r.CreatedBy,
	); err != nil {
		log.Error().Err(err).Msg("failed to create recurrence rule")
		return model.RecurrenceRule{}, err
	}
	return out, nil
}

func GetRecurrenceRuleByID(id int) (model.RecurrenceRule, error) {
	var r model.RecurrenceRule
	err := DB.Get(&r, `SELECT `+ruleColumns+` FROM recurrence_rules WHERE id = $1;`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RecurrenceRule{}, sql.ErrNoRows
		}
		log.Error().Err(err).Int("rule_id", id).Msg("failed to get recurrence rule by id")
	}
	return r, err
}

func ListRecurrenceRules(ownerID int) ([]model.RecurrenceRule, error) {
	var out []model.RecurrenceRule
	const q = `
	SELECT ` + ruleColumns + `
	  FROM recurrence_rules
	 WHERE created_by = $1
	 ORDER BY id;`
	if err := DB.Select(&out, q, ownerID); err != nil {
		log.Error().Err(err).Msg("failed to list recurrence rules")
		return nil, err
	}
	return out, nil
}

func UpdateRecurrenceRule(id int, r model.RecurrenceRule) error {
	res, err := DB.Exec(`
		UPDATE recurrence_rules
		SET kind = $2,
		days_of_week = $3,
		start_time = $4,
		end_time = $5,
		start_date = $6,
		end_date = $7,
		priority = $8,
		is_active = $9,
		updated_at = now()
		WHERE id = $1;`,
		id, r.Kind, r.DaysOfWeek, r.StartTime, r.EndTime, r.StartDate, r.EndDate,
		r.Priority, r.IsActive,
	)
	if err != nil {
		log.Error().Err(err).Int("rule_id", id).Msg("failed to update recurrence rule")
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

// SetRecurrenceRuleActive flips scheduling on or off without touching the
// rule's window definition.
func SetRecurrenceRuleActive(id int, active bool) error {
	_, err := DB.Exec(`
		UPDATE recurrence_rules
		SET is_active = $2,
		updated_at = now()
		WHERE id = $1;`, id, active)
	if err != nil {
		log.Error().Err(err).Int("rule_id", id).Msg("failed to set recurrence rule active flag")
	}
	return err
}

// DeleteRecurrenceRule removes the rule; playlist items referencing it
// fall back to always-eligible via ON DELETE SET NULL.
func DeleteRecurrenceRule(id int) error {
	_, err := DB.Exec(`DELETE FROM recurrence_rules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("rule_id", id).Msg("failed to delete recurrence rule")
	}
	return err
}

// PruneExpiredRules deactivates date-bounded rules whose end date passed
// before the given cutoff. Run from a maintenance job, not a request path.
func PruneExpiredRules(before time.Time) (int64, error) {
	res, err := DB.Exec(`
		UPDATE recurrence_rules
		SET is_active = false,
		updated_at = now()
		WHERE is_active = true
		  AND end_date IS NOT NULL
		  AND end_date < $1;`, before)
	if err != nil {
		log.Error().Err(err).Msg("failed to prune expired recurrence rules")
		return 0, err
	}
	return res.RowsAffected()
}
