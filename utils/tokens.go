package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken returns a hex token built from length random bytes
// (so the string is 2*length characters).
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IssueToken generates a confirmation secret plus its expiry timestamp.
// Persistence is the caller's responsibility.
func IssueToken(ttl time.Duration) (string, time.Time, error) {
	secret, err := GenerateSecureToken(32)
	if err != nil {
		return "", time.Time{}, err
	}
	return secret, time.Now().UTC().Add(ttl), nil
}

const otpDigits = "0123456789"

// GenerateOTP returns an n-digit numeric code from crypto/rand.
func GenerateOTP(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	max := big.NewInt(int64(len(otpDigits)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(otpDigits[num.Int64()])
	}
	return sb.String(), nil
}

// BuildTeamConfirmLink builds the frontend confirmation URL. The trailing
// path segment is the exact secret the confirm endpoint looks up.
func BuildTeamConfirmLink(frontendURL, token string) string {
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/team/confirm/%s", strings.TrimRight(frontendURL, "/"), token)
}
