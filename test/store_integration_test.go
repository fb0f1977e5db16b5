package test

import (
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// TestStoreIntegration walks the store against a real database. Set
// TEST_DATABASE_URL to run it.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, db.InitTestDB("../migrations"))
	store := db.TestStore

	userID, err := store.CreateUser("signage@example.com", "hashedpassword", nil)
	require.NoError(t, err)
	require.Greater(t, userID, 0)

	t.Run("users", func(t *testing.T) {
		user, err := store.GetUserByEmail("signage@example.com")
		require.NoError(t, err)
		assert.Equal(t, "signage@example.com", user.Email)

		name := "Operator"
		require.NoError(t, store.UpdateUserProfile(userID, "ops@example.com", &name))
	})

	t.Run("content and playlists", func(t *testing.T) {
		content, err := store.CreateContent("Welcome", "video/mp4", "https://cdn.example/welcome.mp4", 30, userID)
		require.NoError(t, err)

		playlist, err := store.CreatePlaylist("lobby", nil, userID)
		require.NoError(t, err)

		item, err := store.AddItemToPlaylist(playlist.ID, db.NewPlaylistItem{
			ContentID:  content.ID,
			Position:   1,
			Transition: "fade",
		}, userID)
		require.NoError(t, err)
		assert.Equal(t, content.ID, item.ContentID)

		loaded, err := store.GetPlaylistByID(playlist.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		require.NotNil(t, loaded.Items[0].Content)
		assert.Equal(t, "Welcome", loaded.Items[0].Content.Name)
	})

	t.Run("recurrence rules", func(t *testing.T) {
		start, end := "09:00", "17:00"
		rule, err := store.CreateRecurrenceRule(model.RecurrenceRule{
			Kind:       model.RuleTimeRange,
			DaysOfWeek: pq.Int64Array{1, 2, 3, 4, 5},
			StartTime:  &start,
			EndTime:    &end,
			IsActive:   true,
			CreatedBy:  userID,
		})
		require.NoError(t, err)

		loaded, err := store.GetRecurrenceRuleByID(rule.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RuleTimeRange, loaded.Kind)
		assert.Len(t, loaded.DaysOfWeek, 5)

		require.NoError(t, store.SetRecurrenceRuleActive(rule.ID, false))
		loaded, err = store.GetRecurrenceRuleByID(rule.ID)
		require.NoError(t, err)
		assert.False(t, loaded.IsActive)

		pruned, err := store.PruneExpiredRules(time.Now())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pruned, int64(0))
	})

	t.Run("displays and pairing", func(t *testing.T) {
		display, err := store.CreateDisplay("Lobby TV", nil, userID)
		require.NoError(t, err)
		assert.False(t, display.Paired)

		require.NoError(t, store.PairDisplay(display.ID, "device-abc"))
		paired, err := store.IsDisplayPairedByDeviceID("device-abc")
		require.NoError(t, err)
		assert.True(t, paired)

		playlist, err := store.CreatePlaylist("for display", nil, userID)
		require.NoError(t, err)
		require.NoError(t, store.AssignPlaylistToDisplay(display.ID, playlist.ID))

		assigned, err := store.GetPlaylistForDisplay(display.ID)
		require.NoError(t, err)
		assert.Equal(t, playlist.ID, assigned.ID)

		require.NoError(t, store.TouchDisplayLastSeen("device-abc"))
		refreshed, err := store.GetDisplayByID(display.ID)
		require.NoError(t, err)
		assert.NotNil(t, refreshed.LastSeenAt)

		using, err := store.GetDisplaysUsingPlaylist(playlist.ID)
		require.NoError(t, err)
		require.Len(t, using, 1)
		assert.Equal(t, display.ID, using[0].ID)
	})
}
