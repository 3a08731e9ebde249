package internal

import (
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/pkg/security"

	"gorm.io/gorm"
)

// Deps carries everything the handlers need.
type Deps struct {
	DB     *gorm.DB
	Argon  *security.Argon
	Tokens *security.TokenIssuer
	Auth   *service.Auth
	Mail   service.Mailer
}
