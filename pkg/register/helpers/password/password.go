package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 32
	iterations = 100000
	keyLength  = 64
)

var ErrMalformedHash = errors.New("malformed password hash")

// Hash derives a PBKDF2-HMAC-SHA512 hash with a fresh random salt and
// returns hex(salt) + hex(key), salt first, 64 hex chars.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(plain), []byte(saltHex), iterations, keyLength, sha512.New)
	return saltHex + hex.EncodeToString(key), nil
}

// Verify checks a stored salt+hash string against a provided password.
func Verify(stored, provided string) (bool, error) {
	if len(stored) <= saltBytes*2 {
		return false, ErrMalformedHash
	}
	saltHex := stored[:saltBytes*2]
	want := stored[saltBytes*2:]
	key := pbkdf2.Key([]byte(provided), []byte(saltHex), iterations, keyLength, sha512.New)
	got := hex.EncodeToString(key)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1, nil
}
