package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/autumn-gallery/api-go/services"
)

type UserController struct {
	Directory services.UserDirectory
}

func NewUserController(directory services.UserDirectory) *UserController {
	return &UserController{Directory: directory}
}

// MentionCandidates godoc
// @Summary Search users for mention completion
// @Description Returns users whose username starts with the given prefix.
// @Description Directory failures degrade to an empty list, never an error.
// @Tags users
// @Produce json
// @Param q query string true "Username prefix"
// @Param limit query integer false "Max results (default: 10)"
// @Success 200 {object} map[string]interface{}
// @Router /users/mentions [get]
func (uc *UserController) MentionCandidates(c *gin.Context) {
	prefix := strings.TrimSpace(c.Query("q"))
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	candidates, err := uc.Directory.Search(c.Request.Context(), prefix, limit)
	if err != nil {
		log.WithError(err).Warn("user directory search failed")
		candidates = []services.MentionCandidate{}
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
