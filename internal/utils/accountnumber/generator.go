// Package accountnumber generates the human-facing account identifiers:
// a two-letter bank prefix, the zero-padded bank id, and eight random
// digits. Uniqueness is enforced with a collision-checked retry loop
// instead of trusting the random suffix.
package accountnumber

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/terratale/ledgerd/internal/apperrors"
)

// MaxAttempts bounds the collision-check loop before giving up with
// ErrGenerationFailed.
const MaxAttempts = 5

const randomDigits = 8

var randomCeiling = big.NewInt(100000000) // 10^randomDigits

// ExistsFunc reports whether a candidate account number is already taken.
type ExistsFunc func(ctx context.Context, accountNumber string) (bool, error)

// Generate produces a unique account number for the given bank, retrying on
// collision up to MaxAttempts times.
func Generate(ctx context.Context, bankName string, bankID int64, exists ExistsFunc) (string, error) {
	prefix := bankPrefix(bankName)
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		n, err := rand.Int(rand.Reader, randomCeiling)
		if err != nil {
			return "", fmt.Errorf("reading random digits: %w", err)
		}
		candidate := fmt.Sprintf("%s%02d%0*d", prefix, bankID, randomDigits, n)

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperrors.ErrGenerationFailed
}

func bankPrefix(bankName string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(bankName))
	if len(cleaned) < 2 {
		return "UN"
	}
	return cleaned[:2]
}
