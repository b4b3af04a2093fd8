package models

import "time"

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email      string    `json:"email" gorm:"size:254"`
	Privileged bool      `json:"privileged" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
