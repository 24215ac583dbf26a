package security

import (
	stderrors "errors"
	"time"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "project-tracker"

// Claims are the JWT claims carried by bearer tokens
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates an issuer. The secret must not be empty.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.NewInvalidInputError("auth.jwt_secret", "", "JWT secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.NewInvalidInputError("auth.token_ttl", ttl, "token TTL must be positive")
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (j *JWTIssuer) Issue(userID, username string) (string, error) {
	now := j.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrorTypeInvalidInput, "cannot sign token")
	}
	return token, nil
}

func (j *JWTIssuer) Validate(token string) bool {
	_, err := j.parse(token)
	return err == nil
}

// Principal returns the user carried by a valid token, or an Unauthenticated error.
func (j *JWTIssuer) Principal(token string) (domain.Principal, error) {
	claims, err := j.parse(token)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, errors.NewUnauthenticatedError("token expired")
		}
		return domain.Principal{}, errors.NewUnauthenticatedError("invalid token")
	}
	return domain.Principal{UserID: claims.UserID, Username: claims.Username}, nil
}

func (j *JWTIssuer) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
