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
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/storage"
)

type ContentController struct {
	store   db.Store
	storage storage.Storage
}

func newContentController(store db.Store, storage storage.Storage) *ContentController {
	return &ContentController{store: store, storage: storage}
}

// ContentModule mounts all authenticated /content endpoints.
func ContentModule(store db.Store, storage storage.Storage) api.Module {
	ctl := newContentController(store, storage)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content", ctl.listContent)
		c.GET("/content/:id", ctl.getContent)
		c.POST("/content", ctl.createContent)
		c.PUT("/content/:id", ctl.updateContent)
		c.DELETE("/content/:id", ctl.deleteContent)
	})
}

// GET /api/admin/content
func (c *ContentController) listContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	nameFilters := ctx.QueryArray("name")
	typeFilters := ctx.QueryArray("type")
	userID := user.ID

	all, err := c.store.SearchContent(nameFilters, typeFilters, &userID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list content"}
	}

	out := make([]packets.ContentResponse, 0, len(all))
	for _, x := range all {
		out = append(out, contentResponse(x))
	}
	return out, nil
}

// GET /api/admin/content/:id
func (c *ContentController) getContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	x, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	if x.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return contentResponse(x), nil
}

// POST /api/admin/content
// Multipart form upload: name, type, default_duration, source file.
func (c *ContentController) createContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.PostForm("name")
	typeVal := ctx.PostForm("type")
	if name == "" || typeVal == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing required form fields"}
	}

	defaultDuration := model.DefaultItemDuration
	if raw := ctx.PostForm("default_duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid default_duration"}
		}
		defaultDuration = parsed
	}

	fileHeader, err := ctx.FormFile("source")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	uploadPath, err := c.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("content upload save failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	content, err := c.store.CreateContent(name, typeVal, uploadPath, defaultDuration, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create content"}
	}
	return contentResponse(content), nil
}

// PUT /api/admin/content/:id
func (c *ContentController) updateContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	existing, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	if existing.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	var request packets.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := c.store.UpdateContent(id, request.Name, request.URL, request.DefaultDuration); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update content"}
	}

	updated, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load updated content"}
	}
	return contentResponse(updated), nil
}

// DELETE /api/admin/content/:id
func (c *ContentController) deleteContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	existing, err := c.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	if existing.CreatedBy != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := c.store.DeleteContent(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return nil, nil
}

func contentResponse(x model.Content) packets.ContentResponse {
	return packets.ContentResponse{
		ID:              x.ID,
		Name:            x.Name,
		Type:            x.Type,
		URL:             x.URL,
		DefaultDuration: x.DefaultDuration,
		CreatedAt:       x.CreatedAt.Format(time.RFC3339),
	}
}
