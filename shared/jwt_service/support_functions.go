package jwt_service

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	minSecretLength = 32
	defaultTokenTTL = time.Hour
	maxTokenTTL     = 24 * time.Hour
	defaultIssuer   = "todo_list"
)

// парсер только для разбора структуры токена (подпись и сроки не проверяются)
var unverifiedParser = jwt.NewParser()

// DefaultJWTConfig - значения по умолчанию (секрет по умолчанию не задаётся!)
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		TokenTTL: defaultTokenTTL,
		Issuer:   defaultIssuer,
	}
}

// LoadJWTConfig - загрузка конфига JWT из YAML.
// Переменная окружения JWT_SECRET имеет приоритет над значением из файла.
func LoadJWTConfig(configPath string) (*JWTConfig, error) {
	config := DefaultJWTConfig()

	if configPath != "" {
		yamlFile, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read JWT config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(yamlFile))), config); err != nil {
				return nil, fmt.Errorf("failed to parse JWT config: %w", err)
			}
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Secret = secret
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = defaultTokenTTL
	}
	if config.Issuer == "" {
		config.Issuer = defaultIssuer
	}

	if err := validateJWTConfig(config); err != nil {
		return nil, fmt.Errorf("invalid JWT config: %w", err)
	}
	return config, nil
}

// validateJWTConfig - строгая валидация
func validateJWTConfig(cfg *JWTConfig) error {
	// 1. Секрет не должен быть пустым
	if cfg.Secret == "" {
		return fmt.Errorf("secret is required (set JWT_SECRET)")
	}

	// 2. Минимальная длина секрета
	if len(cfg.Secret) < minSecretLength {
		return fmt.Errorf("secret too short (min %d chars)", minSecretLength)
	}

	// 3. Валидация времени жизни
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if cfg.TokenTTL > maxTokenTTL {
		return fmt.Errorf("token_ttl too long (max 24h)")
	}
	return nil
}

// вспомогательная функция для создания структуры информации для JWT
func NewClaims(now time.Time, ttl time.Duration, subjectID, email, issuer string) CustomClaims {
	return CustomClaims{
		UserID: subjectID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.New().String(),
		},
	}
}

// ParseTokenWithoutVerification парсит JWT токен без проверки подписи,
// но с проверкой базовой структуры и обязательных полей
func ParseTokenWithoutVerification(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token string")
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token format: expected 3 parts")
	}

	token, _, err := unverifiedParser.ParseUnverified(tokenString, &CustomClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims structure")
	}

	// Проверяем обязательные поля
	if claims.ExpiresAt == nil {
		return nil, errors.New("token missing exp claim")
	}
	if claims.UserID == "" {
		return nil, errors.New("token missing user_id claim")
	}
	if claims.Email == "" {
		return nil, errors.New("token missing email claim")
	}
	return claims, nil
}

// DescribeVerifyError - текст ошибки проверки токена для ответа клиенту
func DescribeVerifyError(err error) string {
	switch {
	case errors.Is(err, ErrExpiredCredential):
		return "Token has expired"
	case errors.Is(err, ErrMalformedCredential):
		return "Malformed token"
	case errors.Is(err, ErrInvalidSignature):
		return "Invalid token signature"
	default:
		return "Invalid token"
	}
}
