// Package model contains the database models used across the application
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Image        string
	// EmailVerified stays nil until a verification token is redeemed
	EmailVerified *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Sessions           []Session           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	VerificationTokens []VerificationToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ResendRequests     []ResendRequest     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
