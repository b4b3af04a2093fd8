package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autumn-gallery/api-go/controllers"
)

func SetupReactionRoutes(protected *gin.RouterGroup, reactionController *controllers.ReactionController) {
	images := protected.Group("/images")
	{
		images.POST("/:id/reactions", reactionController.ToggleReaction)
	}
}
