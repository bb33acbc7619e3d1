package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"defiant-meals-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and validates stateless signed admin tokens. No
// server-side session state, so any process behind the load balancer can
// validate a token.
type AuthService interface {
	Login(password string) (string, error)
	ValidateToken(token string) error
}

type authServiceImpl struct {
	jwtSecret     []byte
	adminPassword string
}

func NewAuthService(authCfg *config.Auth) AuthService {
	return &authServiceImpl{
		jwtSecret:     []byte(authCfg.JWTSecret),
		adminPassword: authCfg.AdminPassword,
	}
}

func (s *authServiceImpl) Login(password string) (string, error) {
	if s.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *authServiceImpl) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return ErrInvalidCredentials
	}

	return nil
}
