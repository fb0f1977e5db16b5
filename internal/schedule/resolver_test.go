package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

func item(id, position int, rule *model.RecurrenceRule) model.PlaylistItem {
	return model.PlaylistItem{ID: id, ContentID: id, Position: position, RecurrenceRule: rule}
}

func TestResolveEmptyPlaylist(t *testing.T) {
	out := Resolve(nil, time.Now())
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = Resolve([]model.PlaylistItem{}, time.Now())
	assert.Empty(t, out)
}

func TestResolveItemsWithoutRulesAlwaysEligible(t *testing.T) {
	items := []model.PlaylistItem{item(1, 0, nil), item(2, 1, nil)}
	out := Resolve(items, at(6, "03:00"))
	assert.Len(t, out, 2)
}

func TestResolvePreservesPositionOrder(t *testing.T) {
	rule := timeRule("09:00", "17:00")
	items := []model.PlaylistItem{
		item(3, 30, nil),
		item(1, 10, &rule),
		item(2, 20, nil),
	}

	out := Resolve(items, at(6, "10:00"))
	ids := []int{out[0].ID, out[1].ID, out[2].ID}
	assert.Equal(t, []int{1, 2, 3}, ids)

	// rule filters item 1 after hours, order of the rest is unchanged
	out = Resolve(items, at(6, "20:00"))
	assert.Len(t, out, 2)
	assert.Equal(t, 2, out[0].ID)
	assert.Equal(t, 3, out[1].ID)
}

func TestResolveAllFilteredReturnsEmpty(t *testing.T) {
	rule := timeRule("09:00", "17:00")
	items := []model.PlaylistItem{item(1, 0, &rule)}
	out := Resolve(items, at(6, "20:00"))
	assert.Empty(t, out)
}

func TestHighestPriority(t *testing.T) {
	low := model.RecurrenceRule{Kind: model.RuleAlways, Priority: 1, IsActive: true}
	high := model.RecurrenceRule{Kind: model.RuleAlways, Priority: 5, IsActive: true}

	_, ok := HighestPriority(nil)
	assert.False(t, ok)

	picked, ok := HighestPriority([]model.PlaylistItem{
		item(1, 0, &low),
		item(2, 1, &high),
		item(3, 2, nil),
	})
	assert.True(t, ok)
	assert.Equal(t, 2, picked.ID)

	// ties break by list order
	other := high
	picked, ok = HighestPriority([]model.PlaylistItem{
		item(4, 0, &high),
		item(5, 1, &other),
	})
	assert.True(t, ok)
	assert.Equal(t, 4, picked.ID)
}
