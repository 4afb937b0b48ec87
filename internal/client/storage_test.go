package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileTokenStorage_RoundTrip(t *testing.T) {
	storage := NewFileTokenStorage(t.TempDir())

	token, err := storage.Load()
	require.NoError(t, err)
	require.Empty(t, token, "fresh storage should have no token")

	require.NoError(t, storage.Save("tok-123"))

	token, err = storage.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)

	require.NoError(t, storage.Delete())

	token, err = storage.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestFileTokenStorage_DeleteIsIdempotent(t *testing.T) {
	storage := NewFileTokenStorage(t.TempDir())

	require.NoError(t, storage.Delete())
	require.NoError(t, storage.Delete())
}

func TestMemoryTokenStorage_RoundTrip(t *testing.T) {
	storage := NewMemoryTokenStorage()

	require.NoError(t, storage.Save("tok-123"))
	token, err := storage.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)

	require.NoError(t, storage.Delete())
	token, err = storage.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}
