package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Uppercase base36 alphabet: short codes are read over the phone and
	// typed by hand, so lowercase/uppercase ambiguity is avoided entirely.
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// TicketCodeLength is the suffix length for ticket codes.
	// 36^8 ≈ 2.8e12 possible codes, negligible collision odds at the
	// expected issuance volume.
	TicketCodeLength = 8

	// PrefixTicket is the Stripe-style prefix for ticket codes.
	PrefixTicket = "TKT"
)

// Generate creates a random uppercase code with the specified length.
// The code is produced from a cryptographically secure random source.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = TicketCodeLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random code and panics on error.
// crypto/rand only fails when the platform entropy source is broken.
func MustGenerate(length int) string {
	code, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return code
}

// GenerateWithPrefix creates a prefixed code in the format "PREFIX-RANDOM".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	code, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, code), nil
}

// NewTicketID generates a new ticket code, e.g. "TKT-4R7QZ2LK".
func NewTicketID() (string, error) {
	return GenerateWithPrefix(PrefixTicket, TicketCodeLength)
}

// ParsePrefixedID extracts the prefix and code from a prefixed ID string.
func ParsePrefixedID(prefixedID string) (prefix, code string, err error) {
	parts := strings.SplitN(prefixedID, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// IsTicketID reports whether s looks like a ticket code.
func IsTicketID(s string) bool {
	return ValidatePrefix(s, PrefixTicket) == nil
}
