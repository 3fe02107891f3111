package jwt_service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTManager interface {
	Issue(subjectID, email string, ttl time.Duration) (string, error)
	Verify(tokenString string) (*CustomClaims, error)
	TokenTTL() time.Duration
}

// проверка на этапе компиляции
var _ JWTManager = (*JWTService)(nil)

// опции для конструктора
type Option func(*JWTService)

// WithTimeFunc подменяет источник времени (нужно для тестов на истечение срока)
func WithTimeFunc(now func() time.Time) Option {
	return func(j *JWTService) {
		j.now = now
	}
}

// NewJWTService создаёт рабочий сервис с конфигом
func NewJWTService(config *JWTConfig, opts ...Option) *JWTService {
	j := &JWTService{
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	// парсер учитывает метод подписи и обязательное наличие срока действия
	j.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	return j
}

// время жизни токена из конфига
func (j *JWTService) TokenTTL() time.Duration {
	return j.config.TokenTTL
}

// метод для выпуска токена. Подпись покрывает subject_id, email и абсолютный exp = now + ttl
func (j *JWTService) Issue(subjectID, email string, ttl time.Duration) (string, error) {
	if subjectID == "" || email == "" {
		return "", errors.New("subject id and email are required to issue a token")
	}
	if ttl <= 0 {
		ttl = j.config.TokenTTL
	}

	claims := NewClaims(j.now(), ttl, subjectID, email, j.config.Issuer)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// метод проверки токена. Порядок проверок: структура -> срок действия -> подпись.
// Срок проверяется до подписи, поэтому просроченный токен всегда даёт ErrExpiredCredential.
func (j *JWTService) Verify(tokenString string) (*CustomClaims, error) {
	unverified, err := ParseTokenWithoutVerification(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	if !j.now().Before(unverified.ExpiresAt.Time) {
		return nil, ErrExpiredCredential
	}

	token, err := j.parser.ParseWithClaims(tokenString, &CustomClaims{}, j.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredCredential
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// ключ для проверки подписи (только HMAC)
func (j *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(j.config.Secret), nil
}
