package service

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor used for all stored credentials.
const hashCost = 10

// PasswordHasher produces and verifies salted bcrypt digests.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: hashCost}
}

// Hash returns a salted one-way digest of plain. Two calls with the same
// input yield different digests because bcrypt embeds a random salt.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A malformed digest counts as
// a mismatch, never an error.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
