package auth

import (
	"crypto/md5" //nolint:gosec
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/alexedwards/argon2id"
)

const legacyHashLen = md5.Size * 2

// HashPassword hashes a plaintext password using argon2id with a random salt.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return hash, nil
}

// VerifyPassword compares password with a stored hash in constant time.
// legacy reports a match against an MD5 hash that should be rehashed.
func VerifyPassword(password, hash string) (match, legacy bool, err error) {
	if IsLegacyHash(hash) {
		sum := md5.Sum([]byte(password)) //nolint:gosec
		want := hex.EncodeToString(sum[:])

		match = subtle.ConstantTimeCompare([]byte(want), []byte(hash)) == 1

		return match, match, nil
	}

	match, err = argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, false, fmt.Errorf("verify password: %w", err)
	}

	return match, false, nil
}

// IsLegacyHash reports whether hash is a 32 character hex MD5 digest.
func IsLegacyHash(hash string) bool {
	if len(hash) != legacyHashLen {
		return false
	}

	_, err := hex.DecodeString(hash)

	return err == nil
}
