package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"blogtab/internal/model"
)

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	user := &model.User{ID: 42, Email: "a@x.com", FirstName: "A", LastName: "B"}

	token, err := svc.IssueAccessToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "A", claims.FirstName)
	assert.Equal(t, "B", claims.LastName)

	// Expiry is set and bounded by the configured TTL.
	assert.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(AccessTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one")
	verifier := NewTokenService("secret-two")

	token, err := issuer.IssueAccessToken(&model.User{ID: 1, Email: "a@x.com"})
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	// Same secret, exp already in the past.
	claims := &Claims{
		UserID: 1,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.Error(t, err, "token %q should not validate", token)
	}
}

func TestTokenService_RefreshTokenCarriesJTI(t *testing.T) {
	svc := NewTokenService("test-secret")

	tokenID, token, err := svc.IssueRefreshToken(&model.User{ID: 5, Email: "r@x.com"})
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}
