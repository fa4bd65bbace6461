package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Environment variable keys for the JWT signing secrets.
const (
	EnvKeyAccessSecret  = "JWT_ACCESS_SECRET"
	EnvKeyRefreshSecret = "JWT_REFRESH_SECRET"
)

// Token type values carried in the "typ" claim. Access tokens must never be
// accepted where a refresh token is expected, and vice versa.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Generator defines the interface for issuing and verifying token pairs.
type Generator interface {
	// GenerateAccessToken creates a signed short-lived access token.
	GenerateAccessToken(email string) (string, error)
	// GenerateRefreshToken creates a signed long-lived refresh token.
	GenerateRefreshToken(email string) (string, error)
	// ParseRefreshToken verifies a refresh token and returns the embedded email.
	ParseRefreshToken(token string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
}

// NewGenerator creates a new JWT generator with separate secrets and
// expirations for access and refresh tokens.
func NewGenerator(accessSecret, refreshSecret string, accessExpiration, refreshExpiration time.Duration) Generator {
	return &generator{
		accessSecret:      []byte(accessSecret),
		refreshSecret:     []byte(refreshSecret),
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
	}
}

// sign creates a signed token with standard claims plus the token type.
func sign(secret []byte, email, typ string, expiration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"typ": typ,
		"exp": time.Now().Add(expiration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// GenerateAccessToken creates a signed access token for the given email.
func (g *generator) GenerateAccessToken(email string) (string, error) {
	return sign(g.accessSecret, email, tokenTypeAccess, g.accessExpiration)
}

// GenerateRefreshToken creates a signed refresh token for the given email.
func (g *generator) GenerateRefreshToken(email string) (string, error) {
	return sign(g.refreshSecret, email, tokenTypeRefresh, g.refreshExpiration)
}

// ParseRefreshToken verifies the signature and type of a refresh token and
// returns the email it was issued for.
func (g *generator) ParseRefreshToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid refresh token claims")
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", fmt.Errorf("token is not a refresh token")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", fmt.Errorf("refresh token has no subject")
	}
	return email, nil
}
