package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/autumn-gallery/api-go/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaxReplyDepth caps how far a reply can sit from its root comment:
// root=0, reply=1, reply-to-reply=2.
const MaxReplyDepth = 2

var (
	ErrEmptyText     = errors.New("comment text is empty")
	ErrInvalidParent = errors.New("invalid parent comment")
	ErrNotFound      = errors.New("comment not found")
	ErrForbidden     = errors.New("not allowed to modify this comment")
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// Create persists a new comment on an image. When parentID is set it must
// reference an existing comment on the same image, and the new comment's
// depth must not exceed MaxReplyDepth.
func (s *CommentService) Create(ctx context.Context, imageID uint, authorUsername, text string, parentID *uint) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	var comment models.Comment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			parentDepth, err := replyDepth(tx, imageID, *parentID)
			if err != nil {
				return err
			}
			if parentDepth+1 > MaxReplyDepth {
				return ErrInvalidParent
			}
		}

		now := time.Now().UTC()
		comment = models.Comment{
			ImageID:        imageID,
			AuthorUsername: authorUsername,
			ParentID:       parentID,
			Text:           text,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"commentId": comment.ID,
		"imageId":   imageID,
		"author":    authorUsername,
	}).Debug("comment created")

	return &comment, nil
}

// Edit replaces the text of a comment. Only the original author may edit;
// identity fields and CreatedAt never change.
func (s *CommentService) Edit(ctx context.Context, commentID uint, requesterUsername, newText string) (*models.Comment, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, ErrEmptyText
	}

	var comment models.Comment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if comment.AuthorUsername != requesterUsername {
			return ErrForbidden
		}

		comment.Text = newText
		comment.UpdatedAt = time.Now().UTC()
		return tx.Model(&comment).Select("text", "updated_at").Updates(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment and, with it, the whole reply subtree rooted at
// it. Allowed for the original author or a privileged requester.
func (s *CommentService) Delete(ctx context.Context, commentID uint, requesterUsername string, requesterIsPrivileged bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if comment.AuthorUsername != requesterUsername && !requesterIsPrivileged {
			return ErrForbidden
		}

		ids, err := subtreeIDs(tx, comment.ID)
		if err != nil {
			return err
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"commentId": comment.ID,
			"imageId":   comment.ImageID,
			"removed":   len(ids),
		}).Debug("comment subtree deleted")
		return nil
	})
}

// List returns every comment on an image, in no particular order. Ordering
// and nesting are the thread builder's concern.
func (s *CommentService) List(ctx context.Context, imageID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.DB.WithContext(ctx).Where("image_id = ?", imageID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// replyDepth walks parent pointers up to the root and returns the depth of
// the given comment. A parent that does not exist on the image is an
// ErrInvalidParent.
func replyDepth(tx *gorm.DB, imageID, commentID uint) (int, error) {
	depth := 0
	id := commentID
	for {
		var parent models.Comment
		if err := tx.Where("id = ? AND image_id = ?", id, imageID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrInvalidParent
			}
			return 0, err
		}
		if parent.ParentID == nil {
			return depth, nil
		}
		depth++
		id = *parent.ParentID
	}
}

// subtreeIDs collects the ids of a comment and all its descendants,
// level by level.
func subtreeIDs(tx *gorm.DB, rootID uint) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&models.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}
