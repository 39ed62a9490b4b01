package accountnumber_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/utils/accountnumber"
)

func neverTaken(ctx context.Context, accountNumber string) (bool, error) {
	return false, nil
}

func TestGenerate_Format(t *testing.T) {
	number, err := accountnumber.Generate(context.Background(), "Northwind", 7, neverTaken)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^NO07\d{8}$`), number)
}

func TestGenerate_PadsBankID(t *testing.T) {
	number, err := accountnumber.Generate(context.Background(), "ab", 3, neverTaken)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^AB03\d{8}$`), number)
}

func TestGenerate_ShortNameFallsBackToGenericPrefix(t *testing.T) {
	number, err := accountnumber.Generate(context.Background(), "x", 1, neverTaken)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^UN01\d{8}$`), number)
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, accountNumber string) (bool, error) {
		calls++
		return calls < 3, nil
	}

	number, err := accountnumber.Generate(context.Background(), "Northwind", 7, exists)

	require.NoError(t, err)
	assert.NotEmpty(t, number)
	assert.Equal(t, 3, calls)
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	calls := 0
	alwaysTaken := func(ctx context.Context, accountNumber string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := accountnumber.Generate(context.Background(), "Northwind", 7, alwaysTaken)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
	assert.Equal(t, accountnumber.MaxAttempts, calls)
}

func TestGenerate_PropagatesLookupError(t *testing.T) {
	lookupErr := apperrors.NewAppError(500, "store down", apperrors.ErrStorage)
	failing := func(ctx context.Context, accountNumber string) (bool, error) {
		return false, lookupErr
	}

	_, err := accountnumber.Generate(context.Background(), "Northwind", 7, failing)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
