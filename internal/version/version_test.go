package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.NotEmpty(t, Version)
	require.Equal(t, Version+" (commit unknown, built unknown)", String())
}
