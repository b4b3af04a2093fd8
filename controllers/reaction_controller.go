package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autumn-gallery/api-go/models"
	"github.com/autumn-gallery/api-go/types"
	"github.com/autumn-gallery/api-go/utils"
)

type ReactionController struct {
	DB *gorm.DB
}

func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{DB: db}
}

// ToggleReaction godoc
// @Summary Toggle a reaction on an image
// @Description Adds the LIKE or FAVORITE reaction if absent, removes it if present
// @Tags reactions
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Router /images/{id}/reactions [post]
func (rc *ReactionController) ToggleReaction(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	imageID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image id"})
		return
	}

	var req types.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reaction type must be LIKE or FAVORITE"})
		return
	}

	var existing models.Reaction
	result := rc.DB.Where("username = ? AND image_id = ? AND type = ?",
		user.Username, imageID, req.Type).First(&existing)

	tx := rc.DB.Begin()

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		reaction := models.Reaction{
			Username:  user.Username,
			ImageID:   imageID,
			Type:      req.Type,
			CreatedAt: time.Now().UTC(),
		}

		if err := tx.Create(&reaction).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reaction"})
			return
		}

		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"reacted": true, "type": req.Type})
	} else {
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove reaction"})
			return
		}

		tx.Commit()
		c.JSON(http.StatusOK, gin.H{"reacted": false, "type": req.Type})
	}
}
