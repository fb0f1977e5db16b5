// Package schedule decides which playlist items are eligible to show at a
// given instant. It is pure: no I/O, no clock reads, fully deterministic.
package schedule

import (
	"time"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// Matches reports whether the rule allows showing at the given instant.
// It assumes a rule that passed model.Validate and is total for any such
// rule. Evaluation uses the instant's own location for wall-clock math.
func Matches(r model.RecurrenceRule, at time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.Kind == model.RuleAlways {
		return true
	}

	if r.Kind == model.RuleDateRange || r.Kind == model.RuleDateTimeRange {
		// inclusive on both bounds: the rule covers the whole end day
		day := calendarDay(at)
		if r.StartDate != nil && day < calendarDay(*r.StartDate) {
			return false
		}
		if r.EndDate != nil && day > calendarDay(*r.EndDate) {
			return false
		}
	}

	switch r.Kind {
	case model.RuleDayOfWeek, model.RuleDateRange:
		return r.DayEnabled(at.Weekday())
	case model.RuleTimeRange, model.RuleDateTimeRange:
		return matchesClock(r, at)
	}
	return false
}

// matchesClock applies the time-of-day window, start inclusive and end
// exclusive. A window whose end is numerically before its start crosses
// midnight; its post-midnight tail belongs to the day the window started,
// so the day-of-week test for that tail runs against the previous day.
func matchesClock(r model.RecurrenceRule, at time.Time) bool {
	start, end, ok := r.TimeWindow()
	if !ok {
		return r.DayEnabled(at.Weekday())
	}

	now := at.Hour()*60 + at.Minute()

	if end >= start {
		return r.DayEnabled(at.Weekday()) && now >= start && now < end
	}

	// midnight-wrap
	if now >= start {
		return r.DayEnabled(at.Weekday())
	}
	if now < end {
		return r.DayEnabled(previousDay(at.Weekday()))
	}
	return false
}

func previousDay(d time.Weekday) time.Weekday {
	return (d + 6) % 7
}

// calendarDay flattens an instant to a comparable ordinal of the calendar
// date it names in its own location. Date bounds carry no clock of their
// own, so each side of the comparison is read as a plain calendar date;
// a bound parsed at UTC midnight and an instant in local time still
// compare by the dates they name.
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
