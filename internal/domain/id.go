package domain

import (
	"crypto/rand"
	"fmt"
)

// ─── Identifier Generation ──────────────────────────────────────────────────

// ShortIDLen is the length of reward and redemption identifiers.
const ShortIDLen = 10

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewShortID draws a random alphanumeric identifier. The caller is
// responsible for re-checking uniqueness against storage before use.
func NewShortID() (string, error) {
	buf := make([]byte, ShortIDLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf), nil
}
