package model

import "time"

// ResendRequest throttles how often a user can ask for a new
// verification mail.
type ResendRequest struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"index"`
	CreatedAt time.Time
}
