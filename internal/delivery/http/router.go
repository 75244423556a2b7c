package http

import (
	"github.com/gin-gonic/gin"

	"github.com/wellgym/wellgym-backend/internal/delivery/http/handler"
	"github.com/wellgym/wellgym-backend/internal/delivery/http/middleware"
)

type Router struct {
	profileHandler   *handler.ProfileHandler
	catalogHandler   *handler.CatalogHandler
	workoutHandler   *handler.WorkoutHandler
	communityHandler *handler.CommunityHandler
	authMiddleware   *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	catalogHandler *handler.CatalogHandler,
	workoutHandler *handler.WorkoutHandler,
	communityHandler *handler.CommunityHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler:   profileHandler,
		catalogHandler:   catalogHandler,
		workoutHandler:   workoutHandler,
		communityHandler: communityHandler,
		authMiddleware:   authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		profile := v1.Group("/profile")
		{
			profile.GET("/me", r.profileHandler.GetMe)
			profile.PUT("/me", r.profileHandler.UpdateMe)
			profile.PATCH("/me", r.profileHandler.PatchMe)
			profile.PUT("/me/categories", r.profileHandler.PutCategories)
			profile.POST("/me/avatar", r.profileHandler.UploadAvatar)
		}

		v1.GET("/catalog", r.catalogHandler.Browse)

		workouts := v1.Group("/workouts")
		{
			workouts.POST("", r.workoutHandler.SaveSet)
			workouts.GET("", r.workoutHandler.History)
		}

		progress := v1.Group("/progress")
		{
			progress.GET("", r.workoutHandler.Progress)
			progress.GET("/export", r.workoutHandler.ExportCSV)
		}

		communityGroup := v1.Group("/community")
		{
			communityGroup.GET("/messages", r.communityHandler.ListMessages)
			communityGroup.POST("/messages", r.communityHandler.PostMessage)
			communityGroup.GET("/ws", r.communityHandler.Subscribe)
		}
	}

	return router
}
