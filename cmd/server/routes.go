package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api"
	adminapi "github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/admin/endpoints"
	authapi "github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/auth/endpoints"
	tvapi "github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/tv/endpoints"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Device-ID",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.DisplayModule(store),
		adminapi.ContentModule(store, storageSystem),
		adminapi.PlaylistModule(store),
		adminapi.RuleModule(store),
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.TvModule(store),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
