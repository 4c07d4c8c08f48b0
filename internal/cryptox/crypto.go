// Package cryptox implements password hashing for stored credentials.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/plantguard/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// DeriveKey stretches password with argon2id using the given salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// HashPassword returns an argon2id hash of password and the fresh random salt
// it was derived with.
func HashPassword(password []byte) (hash []byte, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return DeriveKey(password, salt), salt
}

// VerifyPassword reports whether candidate hashes to hash under salt.
// The comparison runs in constant time.
func VerifyPassword(hash, salt, candidate []byte) bool {
	return subtle.ConstantTimeCompare(hash, DeriveKey(candidate, salt)) == 1
}
