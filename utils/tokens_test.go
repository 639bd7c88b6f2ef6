// utils/tokens_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	secret, expiresAt, err := IssueToken(7 * 24 * time.Hour)
	require.NoError(t, err)

	assert.Len(t, secret, 64)
	assert.Regexp(t, "^[0-9a-f]+$", secret)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	other, _, err := IssueToken(time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP(6)
	require.NoError(t, err)

	assert.Len(t, code, 6)
	assert.Regexp(t, "^[0-9]+$", code)
}

func TestBuildTeamConfirmLink(t *testing.T) {
	link := BuildTeamConfirmLink("https://eventix.example.com", "abc123")
	assert.Equal(t, "https://eventix.example.com/team/confirm/abc123", link)

	// A trailing slash on the base must not double up.
	link = BuildTeamConfirmLink("https://eventix.example.com/", "abc123")
	assert.Equal(t, "https://eventix.example.com/team/confirm/abc123", link)
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TOKENS_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOrDefault("TOKENS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("TOKENS_TEST_MISSING", "fallback"))
}
