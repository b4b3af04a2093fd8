package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/autumn-gallery/api-go/mentions"
	"github.com/autumn-gallery/api-go/services"
	"github.com/autumn-gallery/api-go/threads"
	"github.com/autumn-gallery/api-go/types"
	"github.com/autumn-gallery/api-go/utils"
)

// CommentController serves one image's comment panel: thread load, post,
// edit, delete, and the mention composition helpers.
type CommentController struct {
	Comments  *services.CommentService
	Directory services.UserDirectory
	resolver  *mentions.Resolver
}

func NewCommentController(comments *services.CommentService, directory services.UserDirectory) *CommentController {
	cc := &CommentController{Comments: comments, Directory: directory}
	cc.resolver = mentions.NewResolver(func(ctx context.Context, prefix string) ([]services.MentionCandidate, error) {
		return directory.Search(ctx, prefix, services.DefaultCandidateLimit)
	})
	return cc
}

// GetImageComments godoc
// @Summary Get an image's comment thread
// @Description Returns the reply forest for an image, oldest conversation first
// @Tags comments
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Router /images/{id}/comments [get]
func (cc *CommentController) GetImageComments(c *gin.Context) {
	imageID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image id"})
		return
	}

	comments, err := cc.Comments.List(c.Request.Context(), imageID)
	if err != nil {
		log.WithError(err).Error("failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": threads.Build(comments),
		"count":    len(comments),
	})
}

// CreateComment godoc
// @Summary Post a comment or reply
// @Description Creates a comment on an image; parentId makes it a reply
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Success 201 {object} models.Comment
// @Router /images/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
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

	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comment, err := cc.Comments.Create(c.Request.Context(), imageID, user.Username, req.Text, req.ParentID)
	if err != nil {
		cc.writeCommentError(c, err, "Failed to create comment")
		return
	}

	// The caller reloads the thread after a successful post; the full
	// reload is the authoritative view.
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Replaces a comment's text; author only
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} models.Comment
// @Router /comments/{id} [patch]
func (cc *CommentController) UpdateComment(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	commentID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	var req types.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comment, err := cc.Comments.Edit(c.Request.Context(), commentID, user.Username, req.Text)
	if err != nil {
		cc.writeCommentError(c, err, "Failed to edit comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Deletes a comment and its whole reply subtree; author or moderator
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	commentID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	if err := cc.Comments.Delete(c.Request.Context(), commentID, user.Username, user.Privileged); err != nil {
		cc.writeCommentError(c, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ComposeMentionQuery reports the in-progress mention query in a comment
// draft, if any.
func (cc *CommentController) ComposeMentionQuery(currentText string) (string, bool) {
	return mentions.Scan(currentText)
}

// ResolveMentionCandidates looks up candidates for the mention in progress in
// currentText. A superseded or failed lookup yields no candidates: mention
// assistance is a convenience and never blocks composition.
func (cc *CommentController) ResolveMentionCandidates(ctx context.Context, currentText string) []services.MentionCandidate {
	candidates, stale, err := cc.resolver.Resolve(ctx, currentText)
	if stale {
		return nil
	}
	if err != nil {
		log.WithError(err).Warn("mention lookup failed")
		return []services.MentionCandidate{}
	}
	return candidates
}

// InsertMention splices the chosen username over the trailing partial
// mention in currentText.
func (cc *CommentController) InsertMention(currentText, chosenUsername string) string {
	return mentions.Insert(currentText, chosenUsername)
}

func (cc *CommentController) writeCommentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text cannot be empty"})
	case errors.Is(err, services.ErrInvalidParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent comment"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own comments"})
	default:
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
