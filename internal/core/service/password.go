package service

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a self-salted bcrypt digest of the plaintext.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the digest. A
// malformed digest yields false, not a distinct error: callers must not be
// able to distinguish "bad stored hash" from "wrong password".
func VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
