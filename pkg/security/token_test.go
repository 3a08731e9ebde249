package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte("access-secret"),
		refreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
}

func TestIssuePairAndVerify(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()

	pair, err := issuer.IssuePair("user-1", "alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.RefreshExpiresAt, 5*time.Second)

	claims, err := issuer.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice@x.com", claims.Email)

	claims, err = issuer.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()

	pair, err := issuer.IssuePair("user-1", "alice@x.com")
	require.NoError(t, err)

	// Separate secrets: a refresh token must never pass as an access
	// token and vice versa
	_, err = issuer.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = issuer.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()
	issuer.AccessTTL = -time.Second

	token, err := issuer.IssueAccessToken("user-1", "alice@x.com")
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := testIssuer().IssueAccessToken("user-1", "alice@x.com")
	require.NoError(t, err)

	other := testIssuer()
	other.accessSecret = []byte("some-other-secret")

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestDecodeUnverified(t *testing.T) {
	t.Parallel()

	issuer := testIssuer()
	issuer.RefreshTTL = -time.Second

	pair, err := issuer.IssuePair("user-1", "alice@x.com")
	require.NoError(t, err)

	// Verification rejects the expired token
	_, err = issuer.VerifyRefreshToken(pair.RefreshToken)
	require.Error(t, err)

	// The unverified decode still surfaces the claims for logout
	// cleanup
	claims, err := DecodeUnverified(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = DecodeUnverified("not.a.jwt")
	assert.Error(t, err)
}
