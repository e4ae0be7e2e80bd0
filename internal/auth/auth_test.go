package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", digest)
	assert.True(t, h.Verify("Secret123", digest))
	assert.False(t, h.Verify("secret123", digest))
	assert.False(t, h.Verify("", digest))

	again, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "digests must be salted")

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}

func newIssuer(t *testing.T, secret string) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(secret, 0)
	require.NoError(t, err)
	return issuer
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newIssuer(t, "super-secret")
	assert.Equal(t, DefaultTokenTTL, issuer.TTL())

	identity := Identity{ID: "u-1", Username: "a", Email: "a@x.com", IsAdmin: true}
	token, err := issuer.Issue(identity)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, *got)
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer := newIssuer(t, "super-secret")
	issued := time.Now()
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(Identity{ID: "u-1"})
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = issuer.Verify(token)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(24*time.Hour + time.Second) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := newIssuer(t, "right-secret")
	foreign := newIssuer(t, "wrong-secret")

	foreignToken, err := foreign.Issue(Identity{ID: "u-1"})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Identity: Identity{ID: "u-1"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Identity: Identity{ID: "u-1"},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	first, err := issuer.Issue(Identity{ID: "u-1"})
	require.NoError(t, err)
	second, err := issuer.Issue(Identity{ID: "u-2"})
	require.NoError(t, err)
	tampered := first[:strings.LastIndex(first, ".")] + second[strings.LastIndex(second, "."):]

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "foreign secret", token: foreignToken},
		{name: "alg none", token: noneToken},
		{name: "missing expiry", token: noExpiry},
		{name: "missing identity", token: noSubject},
		{name: "malformed", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "tampered", token: tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, got)
		})
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{ID: "u-1", Username: "a"})
	got, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", got.ID)
}
