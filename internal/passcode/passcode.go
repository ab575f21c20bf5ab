// Package passcode implements dialog password generation and hashing.
//
// Passwords are short numeric codes shown to the user exactly once. The
// server never sees the plaintext: clients hash before sending, and the
// server matches dialogs by flat hash equality.
package passcode

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// salt is appended to every password before hashing. Changing it
// invalidates all existing dialogs.
const salt = "allbox_salt_2024"

const (
	MinDigits = 4
	MaxDigits = 6
)

// Generate returns a random numeric password of the given length
// (4 to 6 digits, no leading zero).
func Generate(digits int) (string, error) {
	if digits < MinDigits || digits > MaxDigits {
		return "", fmt.Errorf("passcode length %d out of range [%d, %d]", digits, MinDigits, MaxDigits)
	}

	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}
	span := low*10 - low // e.g. 9000 for 4 digits

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", low+n.Int64()), nil
}

// Hash returns the lowercase hex SHA-256 digest of password+salt.
// Deterministic on purpose: dialogs are looked up by hash equality.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
