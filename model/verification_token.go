package model

import "time"

type VerificationToken struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	Used      bool `gorm:"default:false"`
	UsedAt    *time.Time
	CreatedAt time.Time
}
