package util

import (
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
)

// AccessCodeLength is the length of an HR access code.
const AccessCodeLength = 8

// NewAccessCode returns a short upper-case code taken from a random UUID.
func NewAccessCode() string {
	return strings.ToUpper(uuid.NewString()[:AccessCodeLength])
}

// AccessCodeMatches compares codes in constant time. Matching is exact.
func AccessCodeMatches(stored, provided string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}
