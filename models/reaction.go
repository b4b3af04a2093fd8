package models

import "time"

const (
	ReactionLike     = "LIKE"
	ReactionFavorite = "FAVORITE"
)

// Reaction is a per-user LIKE or FAVORITE on an image. A user can hold at
// most one reaction of each type per image.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;not null;uniqueIndex:idx_reaction_user_image_type"`
	ImageID   uint      `json:"imageId" gorm:"not null;uniqueIndex:idx_reaction_user_image_type"`
	Type      string    `json:"type" gorm:"size:10;not null;uniqueIndex:idx_reaction_user_image_type"`
	CreatedAt time.Time `json:"createdAt"`
}
