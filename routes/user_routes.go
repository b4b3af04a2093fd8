package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autumn-gallery/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	{
		users.GET("/mentions", userController.MentionCandidates)
	}
}
