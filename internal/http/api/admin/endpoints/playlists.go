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
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

type PlaylistController struct {
	store db.Store
}

func newPlaylistController(store db.Store) *PlaylistController {
	return &PlaylistController{store: store}
}

// PlaylistModule mounts all authenticated /playlists endpoints.
func PlaylistModule(store db.Store) api.Module {
	ctl := newPlaylistController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.PUT("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)

		// items
		c.POST("/playlists/:id/items", ctl.addItem)
		c.PUT("/playlists/:id/items/:itemID", ctl.updateItem)
		c.DELETE("/playlists/:id/items/:itemID", ctl.removeItem)
		c.POST("/playlists/:id/items/reorder", ctl.reorderItems)
	})
}

// GET /api/admin/playlists
func (p *PlaylistController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := p.store.ListPlaylists()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list playlists"}
	}

	out := make([]packets.PlaylistResponse, 0, len(all))
	for _, pl := range all {
		if pl.CreatedBy != user.ID {
			continue
		}
		out = append(out, playlistResponse(pl))
	}
	return out, nil
}

// POST /api/admin/playlists
func (p *PlaylistController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	pl, err := p.store.CreatePlaylist(request.Name, request.Description, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create playlist"}
	}
	return playlistResponse(pl), nil
}

// GET /api/admin/playlists/:id
func (p *PlaylistController) getPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return playlistResponse(*pl), nil
}

// PUT /api/admin/playlists/:id
func (p *PlaylistController) updatePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylist(pl.ID, request.Name, request.Description); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update playlist"}
	}

	updated, err := p.store.GetPlaylistByID(pl.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load updated playlist"}
	}
	p.notifyPlaylistChanged(pl.ID)
	return playlistResponse(updated), nil
}

// DELETE /api/admin/playlists/:id
func (p *PlaylistController) deletePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	displays, _ := p.store.GetDisplaysUsingPlaylist(pl.ID)
	if err := p.store.DeletePlaylist(pl.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete playlist"}
	}
	for _, d := range displays {
		notifyDisplayChanged(d)
	}
	return nil, nil
}

// POST /api/admin/playlists/:id/items
func (p *PlaylistController) addItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AddPlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	content, err := p.store.GetContentByID(request.ContentID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}
	if content.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if request.RecurrenceRuleID != nil {
		if _, err := p.store.GetRecurrenceRuleByID(*request.RecurrenceRuleID); err != nil {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "recurrence rule not found"}
		}
	}

	position := len(pl.Items) + 1
	if request.Position != nil {
		position = *request.Position
	}

	item, err := p.store.AddItemToPlaylist(pl.ID, db.NewPlaylistItem{
		ContentID:        request.ContentID,
		Position:         position,
		Duration:         request.Duration,
		Transition:       request.Transition,
		TransitionMS:     request.TransitionMS,
		TransitionEasing: request.TransitionEasing,
		RecurrenceRuleID: request.RecurrenceRuleID,
	}, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add item"}
	}

	p.notifyPlaylistChanged(pl.ID)
	return playlistItemResponse(item), nil
}

// PUT /api/admin/playlists/:id/items/:itemID
func (p *PlaylistController) updateItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	itemID, err := strconv.Atoi(ctx.Param("itemID"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	var request packets.UpdatePlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.RecurrenceRuleID != nil {
		if _, err := p.store.GetRecurrenceRuleByID(*request.RecurrenceRuleID); err != nil {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "recurrence rule not found"}
		}
	}

	if err := p.store.UpdatePlaylistItem(itemID, request.Position, request.Duration, request.Transition, request.RecurrenceRuleID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update item"}
	}

	p.notifyPlaylistChanged(pl.ID)
	return nil, nil
}

// DELETE /api/admin/playlists/:id/items/:itemID
func (p *PlaylistController) removeItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	itemID, err := strconv.Atoi(ctx.Param("itemID"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	if err := p.store.RemovePlaylistItem(itemID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove item"}
	}

	p.notifyPlaylistChanged(pl.ID)
	return nil, nil
}

// POST /api/admin/playlists/:id/items/reorder
func (p *PlaylistController) reorderItems(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	pl, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReorderPlaylistItemsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if len(request.ItemIDs) != len(pl.Items) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "item_ids must cover every playlist item"}
	}

	if err := p.store.ReorderPlaylistItems(pl.ID, request.ItemIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reorder items"}
	}

	updated, err := p.store.GetPlaylistByID(pl.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load reordered playlist"}
	}
	p.notifyPlaylistChanged(pl.ID)
	return playlistResponse(updated), nil
}

func (p *PlaylistController) ownedPlaylist(ctx *gin.Context, user *model.User) (*model.Playlist, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	pl, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	if pl.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return &pl, nil
}

func (p *PlaylistController) notifyPlaylistChanged(playlistID int) {
	displays, err := p.store.GetDisplaysUsingPlaylist(playlistID)
	if err != nil {
		log.Debug().Err(err).Int("playlist_id", playlistID).Msg("could not look up displays for nudge")
		return
	}
	for _, d := range displays {
		notifyDisplayChanged(d)
	}
}

func playlistResponse(pl model.Playlist) packets.PlaylistResponse {
	items := make([]packets.PlaylistItemResponse, 0, len(pl.Items))
	for _, it := range pl.Items {
		items = append(items, playlistItemResponse(it))
	}
	return packets.PlaylistResponse{
		ID:          pl.ID,
		Name:        pl.Name,
		Description: pl.Description,
		Items:       items,
		CreatedAt:   pl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   pl.UpdatedAt.Format(time.RFC3339),
	}
}

func playlistItemResponse(it model.PlaylistItem) packets.PlaylistItemResponse {
	resp := packets.PlaylistItemResponse{
		ID:               it.ID,
		ContentID:        it.ContentID,
		Position:         it.Position,
		Duration:         it.Duration,
		Transition:       it.Transition,
		TransitionMS:     it.TransitionMS,
		TransitionEasing: it.TransitionEasing,
		RecurrenceRuleID: it.RecurrenceRuleID,
	}
	if it.Content != nil {
		c := contentResponse(*it.Content)
		resp.Content = &c
	}
	if it.RecurrenceRule != nil {
		r := ruleResponse(*it.RecurrenceRule)
		resp.RecurrenceRule = &r
	}
	return resp
}
