package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autumn-gallery/api-go/models"
	"gorm.io/gorm"
)

// ErrDirectoryUnavailable wraps any transport or query failure from the user
// directory. Callers are expected to degrade to an empty candidate list.
var ErrDirectoryUnavailable = errors.New("user directory unavailable")

// DefaultCandidateLimit bounds a mention lookup when the caller does not.
const DefaultCandidateLimit = 10

// MentionCandidate is a directory hit offered while composing a mention.
// Never persisted here.
type MentionCandidate struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// UserDirectory resolves username prefixes to mention candidates.
type UserDirectory interface {
	Search(ctx context.Context, prefix string, limit int) ([]MentionCandidate, error)
}

// GormDirectory serves mention lookups from the users table.
type GormDirectory struct {
	DB *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{DB: db}
}

func (d *GormDirectory) Search(ctx context.Context, prefix string, limit int) ([]MentionCandidate, error) {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	// LOWER + lowercased pattern keeps the match case-insensitive on both
	// postgres and the sqlite test driver.
	pattern := strings.ToLower(prefix) + "%"

	candidates := []MentionCandidate{}
	err := d.DB.WithContext(ctx).
		Model(&models.User{}).
		Select("id, username").
		Where("LOWER(username) LIKE ?", pattern).
		Order("username ASC").
		Limit(limit).
		Scan(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return candidates, nil
}
