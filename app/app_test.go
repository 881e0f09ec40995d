package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoACL-Admin/GoACL-Admin/internal/auth"
)

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"hash-password", "secret123"})

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())

	hash := strings.TrimSpace(out.String())

	match, legacy, err := auth.VerifyPassword("secret123", hash)
	require.NoError(t, err)
	assert.True(t, match)
	assert.False(t, legacy)
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"start", "migrate", "hash-password"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
