package credentials

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	SecretPrefix = "sk_"
	secretBytes  = 32
	digestLength = sha256.Size * 2
)

var secretPattern = regexp.MustCompile(`^sk_[0-9a-f]{64}$`)

// GenerateSecret returns "sk_" followed by 64 lowercase hex characters.
func GenerateSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return SecretPrefix + hex.EncodeToString(buf), nil
}

// ValidFormat reports whether token has the shape of an issued secret.
func ValidFormat(token string) bool {
	return secretPattern.MatchString(token)
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive; anything but exactly two
// space-separated parts is rejected.
func ExtractBearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Hasher derives the stored digest of a secret with HMAC-SHA256 keyed by a
// server-side pepper.
type Hasher struct {
	pepper []byte
}

func NewHasher(pepper string) (*Hasher, error) {
	if pepper == "" {
		return nil, ErrEmptyPepper
	}
	return &Hasher{pepper: []byte(pepper)}, nil
}

// Hash returns the lowercase hex digest of secret.
func (h *Hasher) Hash(secret string) string {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the digest of secret with stored in constant time. A
// malformed stored digest never matches.
func (h *Hasher) Verify(secret, stored string) bool {
	if len(stored) != digestLength {
		return false
	}
	want, err := hex.DecodeString(stored)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(secret))
	return subtle.ConstantTimeCompare(mac.Sum(nil), want) == 1
}
