package endpoints

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/admin/packets"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/schedule"
)

func strptr(s string) *string { return &s }

// A date_range rule created through the API covers the whole of its end
// day: a campaign ending 2025-01-09 still shows at noon on January 9th.
func TestRuleFromRequestEndDateIsInclusive(t *testing.T) {
	rule, apiErr := ruleFromRequest(packets.CreateRecurrenceRuleRequest{
		Kind:      string(model.RuleDateRange),
		StartDate: strptr("2025-01-06"),
		EndDate:   strptr("2025-01-09"),
	}, 1)
	require.Nil(t, apiErr)

	assert.True(t, schedule.Matches(rule, time.Date(2025, time.January, 9, 12, 0, 0, 0, time.Local)),
		"must match at noon on the end date")
	assert.True(t, schedule.Matches(rule, time.Date(2025, time.January, 9, 23, 59, 0, 0, time.Local)))
	assert.False(t, schedule.Matches(rule, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)))
	assert.False(t, schedule.Matches(rule, time.Date(2025, time.January, 5, 12, 0, 0, 0, time.Local)))
}

func TestRuleFromRequestRejectsMalformedInput(t *testing.T) {
	_, apiErr := ruleFromRequest(packets.CreateRecurrenceRuleRequest{
		Kind:    string(model.RuleDateRange),
		EndDate: strptr("01/09/2025"),
	}, 1)
	require.NotNil(t, apiErr)

	_, apiErr = ruleFromRequest(packets.CreateRecurrenceRuleRequest{
		Kind:      string(model.RuleTimeRange),
		StartTime: strptr("25:00"),
		EndTime:   strptr("17:00"),
	}, 1)
	require.NotNil(t, apiErr)

	_, apiErr = ruleFromRequest(packets.CreateRecurrenceRuleRequest{Kind: "fortnightly"}, 1)
	require.NotNil(t, apiErr)
}
