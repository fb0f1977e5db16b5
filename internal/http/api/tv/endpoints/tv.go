package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/tv/packets"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/middleware"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/metrics"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
	redisclient "github.com/GATkassTACA/trudigital-2.0-sub000/internal/redis"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/schedule"
)

type TvController struct {
	store db.Store
}

func newTvController(store db.Store) *TvController {
	return &TvController{store: store}
}

// TvModule mounts the unauthenticated device endpoints. Devices identify
// themselves by device ID; pairing is the trust boundary.
func TvModule(store db.Store) api.Module {
	ctl := newTvController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/register", ctl.registerPairingCode)
		c.PUBLIC_POST("/connect", ctl.connectDevice)
		c.PUBLIC_GET("/playlist", ctl.getPlaylist)
		c.PUBLIC_POST("/heartbeat", ctl.heartbeat)
	})
}

// POST /api/tv/register
// A fresh device announces its pairing code; an admin claims the code to
// bind the device to a display.
func (t *TvController) registerPairingCode(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterPairingCodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	isPaired, err := t.store.IsDisplayPairedByDeviceID(request.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not check pairing state"}
	}
	if isPaired {
		log.Warn().Str("device_id", request.DeviceID).Msg("device already paired")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "device is already paired"}
	}

	if err := redisclient.SetPairingCode(ctx, request.PairingCode, request.DeviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not register pairing code"}
	}

	metrics.PairingRegistrations.Inc()
	return gin.H{"device_id": request.DeviceID}, nil
}

// POST /api/tv/connect
// A paired device opens its MQTT command channel for change nudges.
func (t *TvController) connectDevice(ctx *gin.Context) (any, *api.APIError) {
	var request packets.HeartbeatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	display, err := t.store.GetDisplayByDeviceID(request.DeviceID)
	if err != nil || !display.Paired {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unknown device"}
	}

	if err := middleware.RegisterDisplayClient(request.DeviceID); err != nil {
		log.Error().Err(err).Str("device_id", request.DeviceID).Msg("mqtt connect failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not open command channel"}
	}
	return gin.H{"success": "device connected"}, nil
}

// GET /api/tv/playlist
// Resolves the display's assigned playlist at the server's current
// instant: inactive and out-of-window items are already filtered out and
// the survivors come back in position order.
func (t *TvController) getPlaylist(ctx *gin.Context) (any, *api.APIError) {
	deviceID := ctx.GetHeader("X-Device-ID")
	if deviceID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing X-Device-ID header"}
	}

	display, err := t.store.GetDisplayByDeviceID(deviceID)
	if err != nil {
		metrics.PlaylistPolls.WithLabelValues("unknown_device").Inc()
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown device"}
	}
	if !display.Paired {
		metrics.PlaylistPolls.WithLabelValues("unpaired").Inc()
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "device not paired"}
	}

	playlist, err := t.store.GetPlaylistForDisplay(display.ID)
	if err != nil {
		// no assignment reads as an empty list, not an error
		metrics.PlaylistPolls.WithLabelValues("empty").Inc()
		metrics.EligibleItems.WithLabelValues(deviceID).Set(0)
		return packets.TVPlaylistResponse{Items: []packets.TVPlaylistItem{}}, nil
	}

	eligible := schedule.Resolve(playlist.Items, time.Now())
	metrics.EligibleItems.WithLabelValues(deviceID).Set(float64(len(eligible)))
	if len(eligible) == 0 {
		metrics.PlaylistPolls.WithLabelValues("empty").Inc()
	} else {
		metrics.PlaylistPolls.WithLabelValues("ok").Inc()
	}

	items := make([]packets.TVPlaylistItem, 0, len(eligible))
	for _, it := range eligible {
		items = append(items, tvPlaylistItem(it))
	}
	return packets.TVPlaylistResponse{
		PlaylistName: playlist.Name,
		Items:        items,
	}, nil
}

// POST /api/tv/heartbeat
// Liveness only: updates last-seen and nothing else.
func (t *TvController) heartbeat(ctx *gin.Context) (any, *api.APIError) {
	var request packets.HeartbeatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.store.TouchDisplayLastSeen(request.DeviceID); err != nil {
		metrics.Heartbeats.WithLabelValues("unknown_device").Inc()
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown device"}
	}

	metrics.Heartbeats.WithLabelValues("ok").Inc()
	return gin.H{"status": "ok"}, nil
}

// tvPlaylistItem flattens an item for the wire; the player maps the
// transition string itself.
func tvPlaylistItem(it model.PlaylistItem) packets.TVPlaylistItem {
	out := packets.TVPlaylistItem{
		ContentID:        it.ContentID,
		Position:         it.Position,
		Duration:         it.HoldDuration(),
		Transition:       it.Transition,
		TransitionMS:     it.TransitionMS,
		TransitionEasing: it.TransitionEasing,
	}
	if it.Content != nil {
		out.URL = it.Content.URL
		out.Type = it.Content.Type
	}
	return out
}
