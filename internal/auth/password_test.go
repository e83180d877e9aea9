package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-password", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.NoError(t, ComparePassword(hash, "s3cret-password"))
	require.Error(t, ComparePassword(hash, "wrong-password"))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password", 4)
	require.NoError(t, err)
	second, err := HashPassword("same-password", 4)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, ComparePassword(first, "same-password"))
	require.NoError(t, ComparePassword(second, "same-password"))
}

func TestHashPassword_EmptyInput(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("", 4)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, ""))
	require.Error(t, ComparePassword(hash, "anything"))
}

func TestHashPassword_TruncatesAt72Bytes(t *testing.T) {
	t.Parallel()

	base := strings.Repeat("a", 72)
	hash, err := HashPassword(base+"tail-one", 4)
	require.NoError(t, err)

	// Passwords differing only beyond byte 72 verify against the same hash.
	require.NoError(t, ComparePassword(hash, base))
	require.NoError(t, ComparePassword(hash, base+"tail-two"))

	// A difference within the first 72 bytes still fails.
	require.Error(t, ComparePassword(hash, strings.Repeat("b", 72)))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "pw"))
}
