package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autumn-gallery/api-go/controllers"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController) {
	images := protected.Group("/images")
	{
		images.GET("/:id/comments", commentController.GetImageComments)
		images.POST("/:id/comments", commentController.CreateComment)
	}

	comments := protected.Group("/comments")
	{
		comments.PATCH("/:id", commentController.UpdateComment)
		comments.DELETE("/:id", commentController.DeleteComment)
	}
}
