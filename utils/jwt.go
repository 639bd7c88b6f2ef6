package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AuthClaims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func accessSecret() []byte {
	return []byte(EnvOrDefault("ACCESS_TOKEN_SECRET", "dev-access-secret"))
}

func refreshSecret() []byte {
	return []byte(EnvOrDefault("REFRESH_TOKEN_SECRET", "dev-refresh-secret"))
}

// GenerateAccessToken issues a short-lived signed token (1 day default).
func GenerateAccessToken(userID uint, email string) (string, error) {
	return signToken(userID, email, accessSecret(), 24*time.Hour)
}

// GenerateRefreshToken issues the long-lived rotation token (10 days).
func GenerateRefreshToken(userID uint, email string) (string, error) {
	return signToken(userID, email, refreshSecret(), 10*24*time.Hour)
}

func signToken(userID uint, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AuthClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func VerifyAccessToken(token string) (*AuthClaims, error) {
	return parseToken(token, accessSecret())
}

func VerifyRefreshToken(token string) (*AuthClaims, error) {
	return parseToken(token, refreshSecret())
}

func parseToken(token string, secret []byte) (*AuthClaims, error) {
	claims := &AuthClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
