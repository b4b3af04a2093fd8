package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autumn-gallery/api-go/controllers"
	"github.com/autumn-gallery/api-go/middleware"
	"github.com/autumn-gallery/api-go/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	commentService := services.NewCommentService(db)
	directory := services.NewGormDirectory(db)

	commentController := controllers.NewCommentController(commentService, directory)
	userController := controllers.NewUserController(directory)
	reactionController := controllers.NewReactionController(db)

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		SetupCommentRoutes(protected, commentController)
		SetupUserRoutes(protected, userController)
		SetupReactionRoutes(protected, reactionController)
	}
}
