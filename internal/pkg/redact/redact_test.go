package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	t.Parallel()

	require.Equal(t, "al***", Username("alice"))
	require.Equal(t, "***", Username("ab"))
	require.Equal(t, "***", Username("a"))
	require.Equal(t, "***", Username(""))

	// Многобайтовые символы считаются по рунам, а не по байтам.
	require.Equal(t, "юз***", Username("юзернейм"))
}

func TestTokenAndPassword_NeverEchoInput(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
