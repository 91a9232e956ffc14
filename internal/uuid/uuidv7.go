// Package uuid generates the time-ordered identifiers used for request IDs
// and stored receipt names.
package uuid

import (
	"strings"

	googleuuid "github.com/google/uuid"
)

// ReceiptPrefix starts every generated receipt filename.
const ReceiptPrefix = "receipt-"

// New generates a UUIDv7. Its leading 48 bits are the Unix time in
// milliseconds, so identifiers sort in creation order.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}
	return id.String()
}

// ReceiptName returns a fresh receipt filename with the given extension,
// e.g. "receipt-0190b6c4-....png".
func ReceiptName(ext string) string {
	return ReceiptPrefix + New() + ext
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// IsReceiptName reports whether name looks like a generated receipt filename.
func IsReceiptName(name string) bool {
	rest, ok := strings.CutPrefix(name, ReceiptPrefix)
	if !ok || len(rest) < 36 {
		return false
	}
	return IsValid(rest[:36])
}
