package security

import (
	"errors"
	"time"
	"venturas/murmur-api/model"
	"venturas/murmur-api/util"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tokenSize = 32

type VerificationTokenOpts struct {
	UserID    string
	ExpiresAt *time.Time
}

// MakeVerificationToken builds a single-use email verification token
// record. The opaque token value is random, not derived from the user.
func MakeVerificationToken(o *VerificationTokenOpts) (*model.VerificationToken, error) {
	if o == nil {
		return nil, errors.New("no token options provided")
	}

	if o.UserID == "" {
		return nil, errors.New("no user ID provided")
	}

	if o.ExpiresAt == nil {
		return nil, errors.New("no expiry provided")
	}

	token, err := util.GenerateToken(tokenSize)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	return &model.VerificationToken{
		ID:        id,
		UserID:    o.UserID,
		Token:     token,
		ExpiresAt: *o.ExpiresAt,
		CreatedAt: time.Now(),
		Used:      false,
	}, nil
}
