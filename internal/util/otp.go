package util

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// loginCodeSpan keeps the code space at exactly the 900000 six-digit values
// 100000-999999. The leading digit is never zero; do not widen the range.
var loginCodeSpan = big.NewInt(900000)

// GenerateLoginCode draws a uniform 6-digit one-time code.
func GenerateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, loginCodeSpan)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateSessionToken returns an opaque hex token with 192 bits of entropy,
// used as the MFA session handle.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashCode digests a one-time code for storage. The plaintext exists only
// between generation and dispatch.
func HashCode(code string) []byte {
	sum := sha256.Sum256([]byte(code))
	return sum[:]
}

// CodeMatches compares a submitted code against a stored digest in constant
// time.
func CodeMatches(code string, hash []byte) bool {
	candidate := sha256.Sum256([]byte(code))
	return subtle.ConstantTimeCompare(candidate[:], hash) == 1
}
