package models

import "time"

// Comment is a single authored message on an image. ParentID points at
// another comment on the same image; nil marks a top-level comment.
type Comment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ImageID        uint      `json:"imageId" gorm:"index;not null"`
	AuthorUsername string    `json:"author" gorm:"size:150;not null"`
	ParentID       *uint     `json:"parentId,omitempty" gorm:"index"`
	Text           string    `json:"text" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
