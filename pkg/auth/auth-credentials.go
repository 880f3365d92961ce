package auth

import "golang.org/x/crypto/bcrypt"

// hashingCost trades offline brute force resistance for interactive latency;
// verifying remains comfortably sub-second on commodity hardware.
const hashingCost = 12

// HashPassword derives a salted bcrypt hash from the plaintext password.
// Each invocation draws a fresh random salt.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), hashingCost)
}

// VerifyPassword reports whether the password matches the stored hash.
// Any comparison failure, malformed or truncated hashes included, counts as a mismatch.
func VerifyPassword(password string, storedHash []byte) bool {
	return bcrypt.CompareHashAndPassword(storedHash, []byte(password)) == nil
}
