package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var gConfig *Config

// Init инициализирует пакет конфигурацией подписи токенов
func Init(cfg *Config) {
	gConfig = cfg
}

// IssueToken выдает bearer-токен для пользователя с указанным guid
func IssueToken(userGUID string) (string, error) {
	if gConfig == nil {
		return "", fmt.Errorf("auth is not initialized")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userGUID,
		Issuer:    gConfig.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(gConfig.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(gConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken проверяет заголовок Authorization и возвращает guid пользователя
func VerifyToken(r *http.Request) (string, error) {
	if gConfig == nil {
		return "", fmt.Errorf("auth is not initialized")
	}

	authToken := r.Header.Get("Authorization")
	if authToken == "" {
		return "", fmt.Errorf("no authorization header")
	}
	authToken = strings.TrimPrefix(authToken, "Bearer ")

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(authToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(gConfig.Secret), nil
	}, jwt.WithIssuer(gConfig.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}

	return claims.Subject, nil
}
