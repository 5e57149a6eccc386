package password

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the minimum password length accepted at registration
	MinLength = 8
)

// Hasher hashes and verifies passwords using bcrypt
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a password using bcrypt. The salt is random, so two calls
// with the same input produce different digests.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash. A malformed digest from
// corrupt storage returns false, never an error.
func (h *Hasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateStrength checks a password against the registration policy and
// returns every violated rule, not just the first.
func ValidateStrength(password string) []string {
	var issues []string

	if len(password) < MinLength {
		issues = append(issues, "Password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasUpper {
		issues = append(issues, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		issues = append(issues, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		issues = append(issues, "Password must contain at least one number")
	}

	return issues
}
