package model

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"ab:cd", 0, true},
		{"12", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ClockMinutes(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestRecurrenceRuleValidate(t *testing.T) {
	valid := RecurrenceRule{
		Kind:       RuleTimeRange,
		DaysOfWeek: pq.Int64Array{1, 2, 3},
		StartTime:  strptr("09:00"),
		EndTime:    strptr("17:00"),
		IsActive:   true,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Kind = "fortnightly"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.DaysOfWeek = pq.Int64Array{7}
	assert.Error(t, bad.Validate())

	bad = valid
	bad.EndTime = nil
	assert.Error(t, bad.Validate(), "start_time without end_time")

	bad = valid
	bad.StartTime = strptr("25:00")
	assert.Error(t, bad.Validate())

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	bad = RecurrenceRule{Kind: RuleDateRange, StartDate: &start, EndDate: &end, IsActive: true}
	assert.Error(t, bad.Validate())
}

func TestDayEnabled(t *testing.T) {
	rule := RecurrenceRule{DaysOfWeek: pq.Int64Array{0, 6}}
	assert.True(t, rule.DayEnabled(time.Sunday))
	assert.True(t, rule.DayEnabled(time.Saturday))
	assert.False(t, rule.DayEnabled(time.Wednesday))

	rule.DaysOfWeek = nil
	assert.True(t, rule.DayEnabled(time.Wednesday), "empty set enables all days")
}

func TestResolveTransitionLegacyStrings(t *testing.T) {
	tests := []struct {
		legacy string
		want   TransitionConfig
	}{
		{"fade", TransitionConfig{Type: TransitionFade, DurationMS: 800}},
		{"slide-left", TransitionConfig{Type: TransitionSlide, Direction: SlideLeft, DurationMS: 800}},
		{"slide-down", TransitionConfig{Type: TransitionSlide, Direction: SlideDown, DurationMS: 800}},
		{"zoom", TransitionConfig{Type: TransitionZoom, DurationMS: 800}},
		{"none", TransitionConfig{Type: TransitionNone, DurationMS: 0}},
		{"sparkle", TransitionConfig{Type: TransitionFade, DurationMS: 800}}, // unknown falls back to fade
		{"", TransitionConfig{Type: TransitionFade, DurationMS: 800}},
	}
	for _, tt := range tests {
		got := ResolveTransition(PlaylistItem{Transition: tt.legacy})
		assert.Equal(t, tt.want, got, "legacy %q", tt.legacy)
	}
}

func TestResolveTransitionOverrides(t *testing.T) {
	it := PlaylistItem{
		Transition:       "zoom",
		TransitionMS:     intptr(250),
		TransitionEasing: strptr("ease-in-out"),
	}
	got := ResolveTransition(it)
	assert.Equal(t, TransitionZoom, got.Type)
	assert.Equal(t, 250, got.DurationMS)
	assert.Equal(t, "ease-in-out", got.Easing)
}

func TestHoldDuration(t *testing.T) {
	assert.Equal(t, DefaultItemDuration, PlaylistItem{}.HoldDuration())
	assert.Equal(t, 30, PlaylistItem{Duration: intptr(30)}.HoldDuration())
	assert.Equal(t, DefaultItemDuration, PlaylistItem{Duration: intptr(0)}.HoldDuration())

	// an unset item duration falls back to the content's default
	withContent := PlaylistItem{Content: &Content{DefaultDuration: 45}}
	assert.Equal(t, 45, withContent.HoldDuration())
	withContent.Duration = intptr(30)
	assert.Equal(t, 30, withContent.HoldDuration(), "item duration wins over content default")
}
