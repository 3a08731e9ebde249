package service

import (
	"fmt"
	"time"
	"venturas/murmur-api/model"
	"venturas/murmur-api/pkg/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionStore owns the sessions table. Every read and write is scoped
// by the owning user id; nothing here ever touches another user's
// rows.
type SessionStore struct {
	DB    *gorm.DB
	Argon *security.Argon
}

func NewSessionStore(db *gorm.DB, argon *security.Argon) *SessionStore {
	return &SessionStore{DB: db, Argon: argon}
}

// Create persists a new session for a freshly issued refresh token.
// One row per issuance, no deduplication: every login gets its own
// independently revocable session.
func (s *SessionStore) Create(userID, refreshToken, deviceInfo, ipAddress string, expiresAt time.Time) (*model.Session, error) {
	hash, err := s.Argon.Hash(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token, %w", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:          id,
		UserID:      userID,
		TokenHash:   hash,
		TokenDigest: security.Fingerprint(refreshToken),
		DeviceInfo:  deviceInfo,
		IPAddress:   ipAddress,
		LastUsed:    time.Now(),
		ExpiresAt:   expiresAt,
		Active:      true,
	}

	if err := s.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session, %w", err)
	}

	return session, nil
}

// Match finds the live session backing a presented refresh token.
// Lookup goes through the deterministic fingerprint column, but the
// row is only trusted after its salted hash verifies against the raw
// token. Failure kinds: ErrNoSessions when the user has no active
// sessions at all, ErrTokenMismatch when none of them back this token,
// ErrSessionExpired when the matched session outlived its expiry (the
// row is deactivated as a side effect).
func (s *SessionStore) Match(userID, refreshToken string) (*model.Session, error) {
	var candidates []model.Session

	err := s.DB.
		Where("user_id = ? AND token_digest = ? AND active = ?", userID, security.Fingerprint(refreshToken), true).
		Find(&candidates).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions, %w", err)
	}

	var matched *model.Session
	for i := range candidates {
		ok, err := s.Argon.Verify(refreshToken, candidates[i].TokenHash)
		if err != nil {
			zap.L().Error("Failed to verify session hash", zap.Error(err), zap.String("sessionID", candidates[i].ID))
			continue
		}

		if ok {
			matched = &candidates[i]
			break
		}
	}

	if matched == nil {
		var count int64

		err := s.DB.
			Model(model.Session{}).
			Where("user_id = ? AND active = ?", userID, true).
			Count(&count).
			Error
		if err != nil {
			return nil, fmt.Errorf("failed to count sessions, %w", err)
		}

		if count == 0 {
			return nil, ErrNoSessions
		}

		return nil, ErrTokenMismatch
	}

	if time.Now().After(matched.ExpiresAt) {
		// Cleanup on access so the dead row doesn't linger until the
		// next sweep
		if err := s.Deactivate(userID, matched.ID); err != nil {
			zap.L().Error("Failed to deactivate expired session", zap.Error(err), zap.String("sessionID", matched.ID))
		}

		return nil, ErrSessionExpired
	}

	return matched, nil
}

// Touch bumps the session's last_used timestamp. It never extends
// expires_at, the total session lifetime is fixed at issuance.
func (s *SessionStore) Touch(userID, sessionID string) error {
	return s.DB.
		Model(model.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("last_used", time.Now()).
		Error
}

// Deactivate marks a single session inactive. A single conditional
// UPDATE, not a read-then-write, so concurrent revokes can't
// interleave.
func (s *SessionStore) Deactivate(userID, sessionID string) error {
	return s.DB.
		Model(model.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("active", false).
		Error
}

// DeactivateAll revokes every session of a user unconditionally,
// forcing re-login on all devices.
func (s *SessionStore) DeactivateAll(userID string) error {
	return s.DB.
		Model(model.Session{}).
		Where("user_id = ?", userID).
		Update("active", false).
		Error
}

// Revoke deactivates the session with the given handle after checking
// it belongs to userID. ErrForbidden covers both a foreign and an
// absent session so the endpoint can't be used to probe handles.
func (s *SessionStore) Revoke(userID, sessionID string) error {
	res := s.DB.
		Model(model.Session{}).
		Where("id = ? AND user_id = ? AND active = ?", sessionID, userID, true).
		Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to revoke session, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrForbidden
	}

	return nil
}

// ListActive returns the user's live sessions for the session-listing
// endpoint.
func (s *SessionStore) ListActive(userID string) ([]model.Session, error) {
	var sessions []model.Session

	err := s.DB.
		Where("user_id = ? AND active = ?", userID, true).
		Order("last_used DESC").
		Find(&sessions).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions, %w", err)
	}

	return sessions, nil
}
