package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/admin/packets"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/middleware"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
	redisclient "github.com/GATkassTACA/trudigital-2.0-sub000/internal/redis"
)

type DisplayController struct {
	store db.Store
}

func newDisplayController(store db.Store) *DisplayController {
	return &DisplayController{store: store}
}

// DisplayModule mounts all authenticated /displays endpoints.
func DisplayModule(store db.Store) api.Module {
	ctl := newDisplayController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/displays", ctl.listDisplays)
		c.POST("/displays", ctl.createDisplay)
		c.GET("/displays/:id", ctl.getDisplay)
		c.PUT("/displays/:id", ctl.updateDisplay)
		c.DELETE("/displays/:id", ctl.deleteDisplay)

		// pairing
		c.POST("/displays/pair", ctl.pairDisplay)

		// display <-> playlist
		c.POST("/displays/:id/playlist", ctl.assignPlaylist)
		c.DELETE("/displays/:id/playlist", ctl.unassignPlaylist)
	})
}

// GET /api/admin/displays
func (t *DisplayController) listDisplays(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := t.store.ListDisplays()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list displays"}
	}

	out := make([]packets.DisplayResponse, 0, len(all))
	for _, d := range all {
		if d.CreatedBy != user.ID {
			continue
		}
		out = append(out, displayResponse(d))
	}
	return out, nil
}

// POST /api/admin/displays
func (t *DisplayController) createDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateDisplayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	display, err := t.store.CreateDisplay(request.Name, request.Location, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create display"}
	}
	return displayResponse(display), nil
}

// GET /api/admin/displays/:id
func (t *DisplayController) getDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	display, apiErr := t.ownedDisplay(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return displayResponse(*display), nil
}

// PUT /api/admin/displays/:id
func (t *DisplayController) updateDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	display, apiErr := t.ownedDisplay(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateDisplayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.store.UpdateDisplay(display.ID, request.Name, request.Location); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update display"}
	}

	updated, err := t.store.GetDisplayByID(display.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load updated display"}
	}
	return displayResponse(updated), nil
}

// DELETE /api/admin/displays/:id
func (t *DisplayController) deleteDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	display, apiErr := t.ownedDisplay(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if display.DeviceID != nil {
		middleware.DisconnectDisplay(*display.DeviceID)
	}
	if err := t.store.DeleteDisplay(display.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete display"}
	}
	return nil, nil
}

// POST /api/admin/displays/pair
// Claims a pairing code a device registered earlier and binds that device
// to the display.
func (t *DisplayController) pairDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PairDisplayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	display, err := t.store.GetDisplayByID(request.DisplayID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
	}
	if display.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	deviceID, err := redisclient.ClaimPairingCode(ctx, request.PairingCode)
	if err != nil {
		log.Warn().Err(err).Str("code", request.PairingCode).Msg("pairing code lookup failed")
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "unknown or expired pairing code"}
	}

	if err := t.store.PairDisplay(display.ID, deviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair display"}
	}

	updated, err := t.store.GetDisplayByID(display.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load paired display"}
	}
	return displayResponse(updated), nil
}

// POST /api/admin/displays/:id/playlist
func (t *DisplayController) assignPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	display, apiErr := t.ownedDisplay(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AssignPlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	playlist, err := t.store.GetPlaylistByID(request.PlaylistID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	if playlist.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := t.store.AssignPlaylistToDisplay(display.ID, playlist.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not assign playlist"}
	}

	notifyDisplayChanged(*display)
	return nil, nil
}

// DELETE /api/admin/displays/:id/playlist
func (t *DisplayController) unassignPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	display, apiErr := t.ownedDisplay(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := t.store.UnassignPlaylistFromDisplay(display.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not unassign playlist"}
	}

	notifyDisplayChanged(*display)
	return nil, nil
}

// ownedDisplay parses :id, loads the display, and enforces ownership.
func (t *DisplayController) ownedDisplay(ctx *gin.Context, user *model.User) (*model.Display, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	display, err := t.store.GetDisplayByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
	}
	if display.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return &display, nil
}

// notifyDisplayChanged nudges the device over MQTT so it re-polls right
// away. Fire and forget.
func notifyDisplayChanged(display model.Display) {
	if display.DeviceID == nil {
		return
	}
	deviceID := *display.DeviceID
	go func() {
		if err := middleware.NotifyDisplay(deviceID, []byte(`{"command":"playlist_updated"}`)); err != nil {
			log.Debug().Err(err).Str("device_id", deviceID).Msg("display nudge skipped")
		}
	}()
}

func displayResponse(d model.Display) packets.DisplayResponse {
	resp := packets.DisplayResponse{
		ID:                 d.ID,
		DeviceID:           d.DeviceID,
		Name:               d.Name,
		Location:           d.Location,
		Paired:             d.Paired,
		AssignedPlaylistID: d.AssignedPlaylistID,
		CreatedAt:          d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          d.UpdatedAt.Format(time.RFC3339),
	}
	if d.LastSeenAt != nil {
		seen := d.LastSeenAt.Format(time.RFC3339)
		resp.LastSeenAt = &seen
	}
	return resp
}
