package endpoints

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/tv/packets"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// fakeStore backs the device endpoints without a database. Only the
// methods the TV surface touches are implemented; anything else panics
// through the embedded nil interface.
type fakeStore struct {
	db.Store
	displays  map[string]model.Display
	playlists map[int]model.Playlist
	touched   []string
}

func (f *fakeStore) GetDisplayByDeviceID(deviceID string) (model.Display, error) {
	d, ok := f.displays[deviceID]
	if !ok {
		return model.Display{}, sql.ErrNoRows
	}
	return d, nil
}

func (f *fakeStore) GetPlaylistForDisplay(displayID int) (model.Playlist, error) {
	for _, d := range f.displays {
		if d.ID == displayID && d.AssignedPlaylistID != nil {
			return f.playlists[*d.AssignedPlaylistID], nil
		}
	}
	return model.Playlist{}, sql.ErrNoRows
}

func (f *fakeStore) TouchDisplayLastSeen(deviceID string) error {
	if _, ok := f.displays[deviceID]; !ok {
		return sql.ErrNoRows
	}
	f.touched = append(f.touched, deviceID)
	return nil
}

func newTestRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/tv"}, TvModule(store))
	return r
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func signageStore() *fakeStore {
	offHours := model.RecurrenceRule{
		ID:        7,
		Kind:      model.RuleTimeRange,
		StartTime: strPtr("23:58"),
		EndTime:   strPtr("23:59"),
		IsActive:  true,
	}
	playlist := model.Playlist{
		ID:   4,
		Name: "lobby loop",
		Items: []model.PlaylistItem{
			{
				ID:        1,
				ContentID: 10,
				Position:  1,
				Duration:  intPtr(20),
				Content:   &model.Content{ID: 10, URL: "https://cdn.example/welcome.mp4", Type: "video/mp4", DefaultDuration: 15},
			},
			{
				ID:               2,
				ContentID:        11,
				Position:         2,
				RecurrenceRuleID: intPtr(7),
				RecurrenceRule:   &offHours,
				Content:          &model.Content{ID: 11, URL: "https://cdn.example/night.png", Type: "image/png", DefaultDuration: 8},
			},
		},
	}
	return &fakeStore{
		displays: map[string]model.Display{
			"dev-1": {ID: 1, Paired: true, AssignedPlaylistID: intPtr(4)},
			"dev-2": {ID: 2, Paired: true},
			"dev-3": {ID: 3, Paired: false},
		},
		playlists: map[int]model.Playlist{4: playlist},
	}
}

func TestGetPlaylistFiltersByRule(t *testing.T) {
	router := newTestRouter(signageStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tv/playlist", nil)
	req.Header.Set("X-Device-ID", "dev-1")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.TVPlaylistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "lobby loop", resp.PlaylistName)

	// the nearly-midnight window is closed now; only item one survives
	if time.Now().Format("15:04") != "23:58" {
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 10, resp.Items[0].ContentID)
		assert.Equal(t, "https://cdn.example/welcome.mp4", resp.Items[0].URL)
		assert.Equal(t, 20, resp.Items[0].Duration, "item duration overrides content default")
	}
}

func TestGetPlaylistNoAssignmentServesEmptyList(t *testing.T) {
	router := newTestRouter(signageStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tv/playlist", nil)
	req.Header.Set("X-Device-ID", "dev-2")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.TVPlaylistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestGetPlaylistRejectsUnknownAndUnpaired(t *testing.T) {
	router := newTestRouter(signageStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tv/playlist", nil)
	req.Header.Set("X-Device-ID", "nope")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/tv/playlist", nil)
	req.Header.Set("X-Device-ID", "dev-3")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/tv/playlist", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, "device header is required")
}

func TestHeartbeatTouchesLastSeen(t *testing.T) {
	store := signageStore()
	router := newTestRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/tv/heartbeat", jsonBody(t, packets.HeartbeatRequest{DeviceID: "dev-1"}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"dev-1"}, store.touched)
}

func TestHeartbeatUnknownDevice(t *testing.T) {
	router := newTestRouter(signageStore())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/tv/heartbeat", jsonBody(t, packets.HeartbeatRequest{DeviceID: "ghost"}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
