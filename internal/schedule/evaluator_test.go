package schedule

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

func strptr(s string) *string { return &s }

// at builds an instant on a fixed calendar: 2025-01-06 is a Monday.
func at(day int, clock string) time.Time {
	m, err := model.ClockMinutes(clock)
	if err != nil {
		panic(err)
	}
	return time.Date(2025, time.January, day, m/60, m%60, 0, 0, time.UTC)
}

func timeRule(start, end string, days ...int64) model.RecurrenceRule {
	return model.RecurrenceRule{
		Kind:       model.RuleTimeRange,
		DaysOfWeek: pq.Int64Array(days),
		StartTime:  strptr(start),
		EndTime:    strptr(end),
		IsActive:   true,
	}
}

func TestMatchesAlways(t *testing.T) {
	rule := model.RecurrenceRule{Kind: model.RuleAlways, IsActive: true}
	for _, instant := range []time.Time{
		at(6, "00:00"),
		at(8, "12:34"),
		at(11, "23:59"),
	} {
		assert.True(t, Matches(rule, instant), "always rule must match at %s", instant)
	}
}

func TestMatchesInactiveRuleNeverMatches(t *testing.T) {
	rule := model.RecurrenceRule{Kind: model.RuleAlways, IsActive: false}
	assert.False(t, Matches(rule, at(6, "12:00")))

	rule = timeRule("09:00", "17:00")
	rule.IsActive = false
	assert.False(t, Matches(rule, at(6, "10:00")))
}

func TestMatchesSameDayWindow(t *testing.T) {
	rule := timeRule("09:00", "17:00")

	tests := []struct {
		clock string
		want  bool
	}{
		{"09:00", true},  // start inclusive
		{"16:59", true},
		{"08:59", false},
		{"17:00", false}, // end exclusive
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(rule, at(6, tt.clock)), "at %s", tt.clock)
	}
}

func TestMatchesMidnightWrap(t *testing.T) {
	rule := timeRule("22:00", "02:00")

	tests := []struct {
		clock string
		want  bool
	}{
		{"23:30", true},
		{"01:30", true},
		{"02:00", false},
		{"12:00", false},
		{"22:00", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(rule, at(6, tt.clock)), "at %s", tt.clock)
	}
}

// A wrapped window belongs to the day it started: a Friday-only 22:00-02:00
// window still shows in the small hours of Saturday, and does not show in
// the small hours of Friday itself.
func TestMatchesMidnightWrapDayOfStart(t *testing.T) {
	friday := int64(time.Friday)
	rule := timeRule("22:00", "02:00", friday)

	assert.True(t, Matches(rule, at(10, "23:00")), "Friday evening")
	assert.True(t, Matches(rule, at(11, "01:30")), "Saturday tail of Friday window")
	assert.False(t, Matches(rule, at(10, "01:30")), "Friday small hours belong to Thursday")
	assert.False(t, Matches(rule, at(11, "23:00")), "Saturday evening not enabled")
}

func TestMatchesDayOfWeek(t *testing.T) {
	rule := model.RecurrenceRule{
		Kind:       model.RuleDayOfWeek,
		DaysOfWeek: pq.Int64Array{1, 2, 3, 4, 5}, // Mon-Fri
		IsActive:   true,
	}

	assert.True(t, Matches(rule, at(6, "00:00")), "Monday")
	assert.True(t, Matches(rule, at(10, "23:59")), "Friday")
	assert.False(t, Matches(rule, at(11, "12:00")), "Saturday")
	assert.False(t, Matches(rule, at(12, "12:00")), "Sunday")
}

func TestMatchesEmptyDaySetMeansAllDays(t *testing.T) {
	rule := model.RecurrenceRule{Kind: model.RuleDayOfWeek, IsActive: true}
	for day := 6; day <= 12; day++ {
		assert.True(t, Matches(rule, at(day, "12:00")))
	}
}

func TestMatchesDateRange(t *testing.T) {
	start := at(7, "00:00")
	end := at(9, "23:59")
	rule := model.RecurrenceRule{
		Kind:      model.RuleDateRange,
		StartDate: &start,
		EndDate:   &end,
		IsActive:  true,
	}

	assert.False(t, Matches(rule, at(6, "23:59")))
	assert.True(t, Matches(rule, at(7, "00:00")), "start inclusive")
	assert.True(t, Matches(rule, at(8, "12:00")))
	assert.True(t, Matches(rule, at(9, "23:59")), "end inclusive")
	assert.False(t, Matches(rule, at(10, "00:00")))
}

// Date bounds are calendar days: a rule ending on the 9th still matches
// at midday on the 9th even when the stored bound is midnight of that day.
func TestMatchesDateRangeCoversWholeEndDay(t *testing.T) {
	start := at(7, "00:00")
	end := at(9, "00:00")
	rule := model.RecurrenceRule{
		Kind:      model.RuleDateRange,
		StartDate: &start,
		EndDate:   &end,
		IsActive:  true,
	}

	assert.True(t, Matches(rule, at(9, "00:01")))
	assert.True(t, Matches(rule, at(9, "12:00")), "midday on the end day")
	assert.True(t, Matches(rule, at(9, "23:59")))
	assert.False(t, Matches(rule, at(10, "00:00")))
}

// Bounds ingested at UTC midnight compare by the date they name even when
// the instant carries a different zone.
func TestMatchesDateRangeAcrossLocations(t *testing.T) {
	end := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{
		Kind:     model.RuleDateRange,
		EndDate:  &end,
		IsActive: true,
	}

	east := time.FixedZone("UTC+5", 5*3600)
	west := time.FixedZone("UTC-5", -5*3600)

	assert.True(t, Matches(rule, time.Date(2025, time.January, 9, 22, 0, 0, 0, east)))
	assert.True(t, Matches(rule, time.Date(2025, time.January, 9, 22, 0, 0, 0, west)))
	assert.False(t, Matches(rule, time.Date(2025, time.January, 10, 1, 0, 0, 0, west)))
}

func TestMatchesDateTimeRangeCombined(t *testing.T) {
	start := at(6, "00:00")
	end := at(10, "23:59")
	rule := model.RecurrenceRule{
		Kind:      model.RuleDateTimeRange,
		StartDate: &start,
		EndDate:   &end,
		StartTime: strptr("09:00"),
		EndTime:   strptr("17:00"),
		IsActive:  true,
	}

	assert.True(t, Matches(rule, at(8, "10:00")))
	assert.False(t, Matches(rule, at(8, "18:00")), "outside time window")
	assert.False(t, Matches(rule, at(11, "10:00")), "outside date range")
}

func TestMatchesDateTimeRangeWithoutClockBounds(t *testing.T) {
	start := at(6, "00:00")
	rule := model.RecurrenceRule{
		Kind:      model.RuleDateTimeRange,
		StartDate: &start,
		IsActive:  true,
	}
	assert.True(t, Matches(rule, at(8, "03:00")), "absent time bounds match all day")
	assert.False(t, Matches(rule, at(5, "03:00")))
}
