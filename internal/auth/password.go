package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt cost 10 matches what the accounts were originally hashed with.
const hashCost = 10

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	return string(b), err
}

func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
