package auth

import (
	"errors"
	"os"
	"sync"
	"time"

	"go-ferreteria-pos/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	accessTTL  = 1 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

var devKeyWarning sync.Once

// jwtKey reads the signing secret from the environment. The fallback only
// exists so local dev and tests run without a .env file - it is a known
// public value, so running on it is shouted about.
func jwtKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	devKeyWarning.Do(func() {
		logger.Get().Warn("⚠️ JWT_SECRET is not set - signing tokens with the built-in dev key. Do NOT run production like this.")
	})
	return []byte("dev_only_ferreteria_secret")
}

// Claims is what goes inside the token (the "ID card")
type Claims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"` // role name, "" when the user has none
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateTokenPair creates a short-lived access token and a long-lived
// refresh token for a user.
func GenerateTokenPair(userID uint, role string) (access string, refresh string, err error) {
	access, err = sign(userID, role, TokenTypeAccess, accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = sign(userID, role, TokenTypeRefresh, refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAccessToken issues a new access token only, used on refresh.
func GenerateAccessToken(userID uint, role string) (string, error) {
	return sign(userID, role, TokenTypeAccess, accessTTL)
}

func sign(userID uint, role, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken parses a token of the expected type and returns its claims.
// A refresh token does not pass where an access token is expected, and
// vice versa.
func ValidateToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, errors.New("wrong token type")
	}

	return claims, nil
}
