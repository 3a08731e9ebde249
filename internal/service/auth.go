package service

import (
	"errors"
	"fmt"
	"strings"
	"venturas/murmur-api/model"
	"venturas/murmur-api/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Auth orchestrates credential validation, token issuance and the
// session lifecycle.
type Auth struct {
	DB       *gorm.DB
	Argon    *security.Argon
	Tokens   *security.TokenIssuer
	Sessions *SessionStore
}

func NewAuth(db *gorm.DB, argon *security.Argon, tokens *security.TokenIssuer) *Auth {
	return &Auth{
		DB:       db,
		Argon:    argon,
		Tokens:   tokens,
		Sessions: NewSessionStore(db, argon),
	}
}

// SanitizedUser is the user record with secret fields stripped, safe
// to hand to handlers and clients.
type SanitizedUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Image         string `json:"image"`
}

func sanitize(u *model.User) *SanitizedUser {
	return &SanitizedUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified != nil,
		Image:         u.Image,
	}
}

// NormalizeEmail fixes the address case policy: emails are stored and
// looked up lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUser checks an email/password pair. A missing user and a
// wrong password both come back as ErrInvalidCredentials so the
// endpoint can't be used to enumerate accounts; ErrEmailNotVerified is
// only reachable after the password verified.
func (a *Auth) ValidateUser(email, password string) (*SanitizedUser, error) {
	var user model.User

	err := a.DB.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash anyway so a missing account doesn't return
			// measurably faster than a wrong password
			a.Argon.Hash(password)
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := a.Argon.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	if user.EmailVerified == nil {
		return nil, ErrEmailNotVerified
	}

	return sanitize(&user), nil
}

// Login issues a token pair for a validated user and records the new
// session. Exactly one session row per call.
func (a *Auth) Login(user *SanitizedUser, deviceInfo, ipAddress string) (*security.TokenPair, error) {
	pair, err := a.Tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair, %w", err)
	}

	_, err = a.Sessions.Create(user.ID, pair.RefreshToken, deviceInfo, ipAddress, pair.RefreshExpiresAt)
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token itself is not rotated; the matched session only gets
// its last_used bumped. userID and email come from the token's
// verified claims, never from request input.
func (a *Auth) Refresh(userID, refreshToken, email string) (string, error) {
	session, err := a.Sessions.Match(userID, refreshToken)
	if err != nil {
		return "", err
	}

	if err := a.Sessions.Touch(userID, session.ID); err != nil {
		zap.L().Error("Failed to touch session", zap.Error(err), zap.String("sessionID", session.ID))
	}

	return a.Tokens.IssueAccessToken(userID, email)
}

// Logout deactivates the session backing the presented refresh token.
// Best effort and idempotent: an unknown or already-dead token is not
// an error, the client is logging out either way.
func (a *Auth) Logout(refreshToken string) error {
	// Unverified decode on purpose: logout with an expired cookie
	// should still clean up its session. The claims are only used to
	// scope the lookup, never to authorize anything.
	claims, err := security.DecodeUnverified(refreshToken)
	if err != nil {
		return nil
	}

	session, err := a.Sessions.Match(claims.Subject, refreshToken)
	if err != nil {
		if IsSessionFailure(err) {
			return nil
		}

		return err
	}

	return a.Sessions.Deactivate(claims.Subject, session.ID)
}

// LogoutAll revokes every session of the user. userID must come from a
// verified access token.
func (a *Auth) LogoutAll(userID string) error {
	return a.Sessions.DeactivateAll(userID)
}

// Profile returns the sanitized user record for a trusted user id.
func (a *Auth) Profile(userID string) (*SanitizedUser, error) {
	var user model.User

	err := a.DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	return sanitize(&user), nil
}
