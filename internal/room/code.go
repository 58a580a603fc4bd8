package room

import (
	"math/rand/v2"
	"strings"
)

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// NewCode returns a room code such as "QZKT-0412".
func NewCode() string {
	b := make([]byte, 9)
	for i := 0; i < 4; i++ {
		b[i] = letters[rand.IntN(len(letters))]
	}
	b[4] = '-'
	for i := 5; i < 9; i++ {
		b[i] = digits[rand.IntN(len(digits))]
	}
	return string(b)
}

// ValidCode reports whether s has the AAAA-0000 shape.
func ValidCode(s string) bool {
	if len(s) != 9 || s[4] != '-' {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	for i := 5; i < 9; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeCode upper-cases and trims user input.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
