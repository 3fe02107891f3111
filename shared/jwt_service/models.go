package jwt_service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ошибки проверки токена (все три на уровне HTTP превращаются в 401)
var (
	ErrMalformedCredential = errors.New("malformed credential")
	ErrExpiredCredential   = errors.New("credential has expired")
	ErrInvalidSignature    = errors.New("invalid credential signature")
)

// JWTService - кодек токенов: выпуск и проверка подписи. Ввода-вывода нет.
type JWTService struct {
	config *JWTConfig       // Конфиг внутри сервиса, после старта не меняется
	parser *jwt.Parser      // парсер с проверкой метода подписи и обязательным exp
	now    func() time.Time // источник времени (в тестах подменяется)
}

// Конфигурация JWTConfig
type JWTConfig struct {
	Secret   string        `yaml:"secret"`    // общий секрет для подписи HS256 (один на все сервисы)
	TokenTTL time.Duration `yaml:"token_ttl"` // время жизни токена (по умолчанию 1 час)
	Issuer   string        `yaml:"issuer"`    // кто выпустил токен
}

// CustomClaims для JWT: {subject_id, email, exp} + служебные iat/iss/jti
type CustomClaims struct {
	UserID string `json:"user_id"` // subject_id - владелец задач
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
