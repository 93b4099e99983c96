package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"recipe-api/domain"
)

// MaxLength is the number of bytes bcrypt looks at; longer inputs would be
// silently truncated.
const MaxLength = 72

type (
	PasswordHasher interface {
		Hash(plaintext string) (string, error)
		Verify(plaintext string, digest string) bool
	}

	bcryptHasher struct {
		cost int
	}
)

func NewBcryptHasher(cost int) PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxLength {
		return "", domain.ValidationError("password must be at most %d bytes", MaxLength)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ValidationError("password must be at most %d bytes", MaxLength)
		}
		return "", err
	}
	return string(digest), nil
}

// Verify never returns an error: a malformed digest simply does not match.
// The cost is read from the digest itself.
func (h *bcryptHasher) Verify(plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
