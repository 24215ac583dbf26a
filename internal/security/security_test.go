package security

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"
	"project-tracker/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Encode("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, hasher.Matches("s3cret!", hash))
	assert.False(t, hasher.Matches("wrong", hash))
	assert.False(t, hasher.Matches("s3cret!", "not-a-hash"))
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Encode(strings.Repeat("p", 73))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	var fields *validation.ValidationError
	require.True(t, stderrors.As(err, &fields))
	require.Len(t, fields.Errors, 1)
	assert.Equal(t, "password", fields.Errors[0].Field)
	assert.Equal(t, "password must be at most 72 bytes long", fields.Errors[0].Message)
}

func TestNewBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestNewJWTIssuer(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		ttl            time.Duration
		errorAssertion func(t *testing.T, err error)
	}{
		{name: "should accept secret and ttl", secret: "k", ttl: time.Hour},
		{
			name:   "should reject empty secret",
			secret: "",
			ttl:    time.Hour,
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
				assert.Contains(t, err.Error(), "secret")
			},
		},
		{
			name:   "should reject non-positive ttl",
			secret: "k",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer, err := NewJWTIssuer(tt.secret, tt.ttl)
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, issuer)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, issuer)
		})
	}
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("u-1", "alice")
	require.NoError(t, err)
	assert.True(t, issuer.Validate(token))

	principal, err := issuer.Principal(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: "u-1", Username: "alice"}, principal)
}

func TestJWTIssuer_RejectsBadTokens(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := NewJWTIssuer("other-secret", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("u-1", "alice")
	require.NoError(t, err)

	expiredIssuer, err := NewJWTIssuer("test-secret", time.Minute)
	require.NoError(t, err)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.Issue("u-1", "alice")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name            string
		token           string
		expectedMessage string
	}{
		{name: "should reject garbage", token: "not.a.jwt", expectedMessage: "invalid token"},
		{name: "should reject empty token", token: "", expectedMessage: "invalid token"},
		{name: "should reject token signed with another key", token: foreign, expectedMessage: "invalid token"},
		{name: "should reject unsigned token", token: unsigned, expectedMessage: "invalid token"},
		{name: "should reject expired token", token: expired, expectedMessage: "token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, issuer.Validate(tt.token))

			_, err := issuer.Principal(tt.token)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.True(t, appErr.IsType(errors.ErrorTypeUnauthenticated))
			assert.Equal(t, tt.expectedMessage, appErr.Message)
		})
	}
}

func TestContextResolver(t *testing.T) {
	resolver := NewContextResolver()

	_, err := resolver.CurrentUserID(context.Background())
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))

	_, err = resolver.CurrentUserID(WithPrincipal(context.Background(), domain.Principal{}))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeUnauthenticated))

	ctx := WithPrincipal(context.Background(), domain.Principal{UserID: "u-1", Username: "alice"})
	id, err := resolver.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	p, ok := PrincipalFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", p.Username)
}
