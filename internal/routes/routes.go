package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/plumecms/plume-backend/internal/handler"
	"github.com/plumecms/plume-backend/internal/middleware"
	"github.com/plumecms/plume-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	postHandler *handler.PostHandler,
	settingHandler *handler.SettingHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)

	posts := api.Group("/posts")
	posts.GET("", postHandler.ListPosts)
	posts.GET("/:id", postHandler.GetPost)
	posts.POST("", auth, postHandler.CreatePost)
	posts.PUT("/:id", auth, postHandler.UpdatePost)
	posts.DELETE("/:id", auth, postHandler.DeletePost)
	posts.GET("/:id/revisions", auth, postHandler.ListRevisions)

	// Separate group: gin cannot mix /posts/:id with a static /posts/slug segment
	api.GET("/slug/:slug", postHandler.GetPostBySlug)

	settings := api.Group("/settings", auth)
	settings.GET("", settingHandler.ListSettings)
	settings.PUT("/:key", settingHandler.UpdateSetting)
}
