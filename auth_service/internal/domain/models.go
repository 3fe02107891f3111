// описание общих структур и ошибок для всего auth_service
package domain

import (
	"errors"
	"time"
)

var (
	ErrDuplicateIdentity  = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// результат успешного логина
type LoginResult struct {
	UserID    string
	Token     string        // подписанный JWT
	TokenType string        // всегда "Bearer"
	ExpiresIn time.Duration // время жизни токена
}

// данные из проверенного токена
type VerifiedIdentity struct {
	UserID string
	Email  string
}
