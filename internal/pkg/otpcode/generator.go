package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// DefaultLength is the number of digits in a code when Generator.Length is unset.
// Lengths outside [MinLength, MaxLength] are clamped to the nearest bound.
const (
	DefaultLength = 6
	MinLength     = 4
	MaxLength     = 10
)

// RandomDigitSource yields uniformly distributed digits in [0, 9].
type RandomDigitSource interface {
	Digit() (int, error)
}

// CryptoSource draws digits from crypto/rand.
type CryptoSource struct{}

var ten = big.NewInt(10)

func (CryptoSource) Digit() (int, error) {
	n, err := rand.Int(rand.Reader, ten)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// Generator produces fixed-length numeric one-time codes. Leading zeros are kept.
type Generator struct {
	Source RandomDigitSource
	Length int
}

// New returns a Generator backed by crypto/rand.
func New(length int) *Generator {
	return &Generator{Source: CryptoSource{}, Length: length}
}

func (g *Generator) Generate() (string, error) {
	n := g.Length
	switch {
	case n <= 0:
		n = DefaultLength
	case n < MinLength:
		n = MinLength
	case n > MaxLength:
		n = MaxLength
	}
	src := g.Source
	if src == nil {
		src = CryptoSource{}
	}

	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		d, err := src.Digit()
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		if d < 0 || d > 9 {
			return "", fmt.Errorf("generate otp: digit %d out of range", d)
		}
		b.WriteByte(byte('0' + d))
	}
	return b.String(), nil
}
