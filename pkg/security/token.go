package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var ErrTokenInvalid = errors.New("token invalid")

// Claims is the signed claim set carried by both access and refresh
// tokens. Subject holds the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenIssuer signs and verifies the access/refresh token pair.
// Access and refresh tokens use independent secrets and lifetimes so
// one can't stand in for the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(viper.GetString("jwt.access_secret")),
		refreshSecret: []byte(viper.GetString("jwt.refresh_secret")),
		AccessTTL:     viper.GetDuration("jwt.access_ttl"),
		RefreshTTL:    viper.GetDuration("jwt.refresh_ttl"),
	}
}

// TokenPair is what a successful login hands back to the client. The
// refresh token additionally gets persisted as a hashed session row.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// RefreshExpiresAt mirrors the refresh token's own exp claim and
	// becomes the session row's expiry
	RefreshExpiresAt time.Time
}

func (t *TokenIssuer) sign(userID, email string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// IssueAccessToken signs a short-lived bearer token for the user.
func (t *TokenIssuer) IssueAccessToken(userID, email string) (string, error) {
	signed, _, err := t.sign(userID, email, t.accessSecret, t.AccessTTL)
	return signed, err
}

// IssuePair signs a fresh access/refresh token pair for the user.
func (t *TokenIssuer) IssuePair(userID, email string) (*TokenPair, error) {
	access, _, err := t.sign(userID, email, t.accessSecret, t.AccessTTL)
	if err != nil {
		return nil, err
	}

	refresh, expiresAt, err := t.sign(userID, email, t.refreshSecret, t.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
	}, nil
}

func (t *TokenIssuer) verify(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tk *jwt.Token) (any, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tk.Method.Alg())
		}

		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// VerifyAccessToken checks signature and expiry of a bearer access
// token and returns its claims.
func (t *TokenIssuer) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return t.verify(tokenStr, t.accessSecret)
}

// VerifyRefreshToken checks signature and expiry of a refresh token
// cookie and returns its claims.
func (t *TokenIssuer) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return t.verify(tokenStr, t.refreshSecret)
}

// DecodeUnverified extracts claims WITHOUT checking the signature or
// expiry. It exists only so logout can find the owning user of an
// already-invalid cookie and clean up best-effort. Never use it for an
// authorization decision.
func DecodeUnverified(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
