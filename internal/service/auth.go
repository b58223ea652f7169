package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims are the JWT claims issued in exchange for a valid API key.
type AuthClaims struct {
	jwt.RegisteredClaims
	KeyID   string `json:"key_id"`
	KeyName string `json:"key_name"`
}

// AuthService signs and verifies the short-lived bearer tokens the HTTP
// API hands out in exchange for API keys.
type AuthService struct {
	secret  []byte
	expiryH int
}

// NewAuthService creates an AuthService. secret is the HMAC-SHA256
// signing key; expiryHours is the token lifetime (default 24).
func NewAuthService(secret string, expiryHours int) *AuthService {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &AuthService{
		secret:  []byte(secret),
		expiryH: expiryHours,
	}
}

// SignToken creates a signed JWT bound to an API key record.
func (s *AuthService) SignToken(keyID, keyName string) (string, error) {
	now := time.Now().UTC()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expiryH) * time.Hour)),
			Issuer:    "mea",
		},
		KeyID:   keyID,
		KeyName: keyName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign JWT: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a JWT string, returning the claims.
func (s *AuthService) VerifyToken(tokenStr string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.KeyID == "" {
		return nil, fmt.Errorf("token missing key_id")
	}

	return claims, nil
}
