package auth

import (
	"errors"

	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the work factor of hashes already in the users table
const BcryptCost = 10

// ErrPasswordTooLong is returned for passwords over bcrypt's 72 byte input limit.
// Binding caps length in characters, so multi-byte input can still reach it.
var ErrPasswordTooLong = apperrors.NewValidationError("password must be at most 72 bytes")

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. Malformed hashes never match.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
