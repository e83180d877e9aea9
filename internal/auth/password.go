package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt only reads the first 72 bytes of input. Longer passwords are
// truncated before hashing, so two passwords that differ only beyond byte 72
// verify against the same hash. Known limitation of the scheme.
const maxPasswordBytes = 72

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes a plaintext password with the configured cost. The
// result is salted: hashing the same password twice yields different strings.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword(truncatePassword(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. The candidate
// is truncated the same way as at hash time; the comparison itself is
// constant-time inside bcrypt.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncatePassword(plain))
}
