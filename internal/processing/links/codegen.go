package links

import (
	"crypto/rand"
	"fmt"
)

// Base58Alphabet omits 0, O, I and l so codes survive being read aloud or
// retyped.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const DefaultCodeLength = 12

// rejectionBound is the largest multiple of the alphabet size that fits in a
// byte. Bytes at or above it are discarded so every symbol is equally likely.
const rejectionBound = 256 / len(Base58Alphabet) * len(Base58Alphabet)

type CodeGenerator interface {
	Generate(length int) (string, error)
}

// CryptoGenerator draws codes from crypto/rand with rejection sampling.
type CryptoGenerator struct{}

func NewCryptoGenerator() *CryptoGenerator { return &CryptoGenerator{} }

func (g *CryptoGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	out := make([]byte, 0, length)
	// About 9% of bytes are rejected; over-read a little to usually finish
	// in one call.
	buf := make([]byte, length+length/4+2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectionBound {
				continue
			}
			out = append(out, Base58Alphabet[int(b)%len(Base58Alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
