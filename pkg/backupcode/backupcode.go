package backupcode

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultCount is the number of codes issued alongside a fresh two-factor enrollment.
	DefaultCount = 10

	codeBytes = 4 // 32 bits of entropy per code, rendered as 8 hex chars
)

// Generate creates cryptographically secure single-use recovery codes.
// Each code is 8 uppercase hex characters split into two hyphenated groups
// for readability, e.g. "AB12-CD34".
func Generate(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCodeCount
	}

	codes := make([]string, count)
	for i := 0; i < count; i++ {
		raw := make([]byte, codeBytes)
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrFailedToGenerateCode, err)
		}
		code := fmt.Sprintf("%X", raw)
		codes[i] = code[:4] + "-" + code[4:]
	}
	return codes, nil
}

// Hash creates the SHA-256 hex digest under which a code is persisted.
// Only hashes are ever stored; the plaintext codes are shown to the user
// once at generation time.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(normalize(code)))
	return hex.EncodeToString(sum[:])
}

// HashAll hashes a freshly generated code set for storage.
func HashAll(codes []string) []string {
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = Hash(code)
	}
	return hashes
}

// Verify reports whether the submitted code matches any stored hash.
// Comparison is constant-time per entry to avoid timing side channels.
// An empty hash set verifies false without error.
func Verify(code string, hashes []string) bool {
	submitted := []byte(Hash(code))

	matched := false
	for _, stored := range hashes {
		// Scan the whole set even after a match to keep timing independent
		// of the match position.
		if subtle.ConstantTimeCompare(submitted, []byte(stored)) == 1 {
			matched = true
		}
	}
	return matched
}

// Consume removes the hash matching the used code and returns the remaining
// set, enforcing single use. Consuming a code that is not present returns
// the set unchanged; callers that need to distinguish "already used" from
// "never valid" should call Verify first.
func Consume(code string, hashes []string) []string {
	submitted := []byte(Hash(code))

	remaining := make([]string, 0, len(hashes))
	for _, stored := range hashes {
		if subtle.ConstantTimeCompare(submitted, []byte(stored)) == 1 {
			continue
		}
		remaining = append(remaining, stored)
	}
	return remaining
}

// normalize makes verification tolerant of how users retype a code.
func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
