package model

import "time"

// Session represents one logged-in device. TokenHash is a salted
// argon2id hash of the raw refresh token and can never be looked up
// directly; TokenDigest is a deterministic SHA-256 fingerprint kept
// alongside it so a presented token can be found without scanning
// every row.
type Session struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index;not null"`
	TokenHash   string `gorm:"not null"`
	TokenDigest string `gorm:"index;not null"`
	DeviceInfo  string
	IPAddress   string
	LastUsed    time.Time
	ExpiresAt   time.Time
	Active      bool `gorm:"default:true"`
	CreatedAt   time.Time
}
