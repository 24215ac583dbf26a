// Package security provides password hashing, bearer tokens and the
// request-scoped principal.
package security

import (
	stderrors "errors"

	"project-tracker/internal/errors"
	"project-tracker/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt will hash
const maxPasswordBytes = 72

// BcryptHasher encodes passwords with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher. A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Encode hashes raw. Input longer than bcrypt accepts comes back as a
// password validation error.
func (h *BcryptHasher) Encode(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if stderrors.Is(err, bcrypt.ErrPasswordTooLong) {
		ve := validation.NewValidationError()
		ve.AddTooManyBytesError("password", maxPasswordBytes)
		return "", ve.AppError()
	}
	if err != nil {
		return "", errors.WrapError(err, errors.ErrorTypeInvalidState, "cannot hash password")
	}
	return string(hash), nil
}

// Matches reports whether raw matches hash. Malformed hashes never match.
func (h *BcryptHasher) Matches(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
