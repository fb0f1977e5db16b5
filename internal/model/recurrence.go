package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// RuleKind selects which fields of a RecurrenceRule take effect.
type RuleKind string

const (
	RuleAlways        RuleKind = "always"
	RuleTimeRange     RuleKind = "time_range"
	RuleDateRange     RuleKind = "date_range"
	RuleDayOfWeek     RuleKind = "day_of_week"
	RuleDateTimeRange RuleKind = "datetime_range"
)

// RecurrenceRule describes when a playlist item may be shown.
// StartTime/EndTime are wall-clock "HH:MM" strings with no date component;
// an EndTime earlier than StartTime means the window crosses midnight.
// DaysOfWeek uses 0=Sunday..6=Saturday; empty means every day.
type RecurrenceRule struct {
	ID         int           `db:"id"          json:"id"`
	Kind       RuleKind      `db:"kind"        json:"kind"`
	DaysOfWeek pq.Int64Array `db:"days_of_week" json:"days_of_week"`
	StartTime  *string       `db:"start_time"  json:"start_time,omitempty"`
	EndTime    *string       `db:"end_time"    json:"end_time,omitempty"`
	StartDate  *time.Time    `db:"start_date"  json:"start_date,omitempty"`
	EndDate    *time.Time    `db:"end_date"    json:"end_date,omitempty"`
	Priority   int           `db:"priority"    json:"priority"`
	IsActive   bool          `db:"is_active"   json:"is_active"`
	CreatedBy  int           `db:"created_by"  json:"created_by"`
	CreatedAt  time.Time     `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"  json:"updated_at"`
}

// ClockMinutes parses a wall-clock "HH:MM" string into minutes since
// midnight. Rejects anything outside 00:00-23:59.
func ClockMinutes(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour out of range in %q", s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range in %q", s)
	}
	return hour*60 + minute, nil
}

// Validate rejects malformed rules at creation time so the evaluator can
// assume well-formed input.
func (r *RecurrenceRule) Validate() error {
	switch r.Kind {
	case RuleAlways, RuleTimeRange, RuleDateRange, RuleDayOfWeek, RuleDateTimeRange:
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}

	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("day of week %d out of range 0-6", d)
		}
	}

	if (r.StartTime == nil) != (r.EndTime == nil) {
		return fmt.Errorf("start_time and end_time must be set together")
	}
	if r.StartTime != nil {
		if _, err := ClockMinutes(*r.StartTime); err != nil {
			return err
		}
		if _, err := ClockMinutes(*r.EndTime); err != nil {
			return err
		}
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return fmt.Errorf("end_date before start_date")
	}
	return nil
}

// TimeWindow returns the rule's time-of-day bounds as minutes since
// midnight. ok is false when the rule carries no time window. Assumes a
// validated rule.
func (r *RecurrenceRule) TimeWindow() (start, end int, ok bool) {
	if r.StartTime == nil || r.EndTime == nil {
		return 0, 0, false
	}
	start, _ = ClockMinutes(*r.StartTime)
	end, _ = ClockMinutes(*r.EndTime)
	return start, end, true
}

// DayEnabled reports whether the given weekday is in the rule's day set.
// An empty set enables every day.
func (r *RecurrenceRule) DayEnabled(day time.Weekday) bool {
	if len(r.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range r.DaysOfWeek {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}
