package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	ConfirmationCodeLength = 8
	confirmationAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrCodeGenerationExhausted = errors.New("could not generate a unique confirmation code")
)

type CodeGenerator interface {
	Generate() (string, error)
}

type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

func (RandomCodeGenerator) Generate() (string, error) {
	limit := big.NewInt(int64(len(confirmationAlphabet)))
	buf := make([]byte, ConfirmationCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = confirmationAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// CodeExists reports whether a code is already taken.
type CodeExists func(ctx context.Context, code string) (bool, error)

// GenerateUniqueCode stops after maxAttempts collisions instead of looping forever.
func GenerateUniqueCode(ctx context.Context, gen CodeGenerator, exists CodeExists, maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := gen.Generate()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}

func IsValidConfirmationCode(code string) bool {
	if len(code) != ConfirmationCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
