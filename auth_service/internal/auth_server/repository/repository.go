// описание слоя репозитория сервиса авторизации
package repository

import (
	"fmt"

	authinterfaces "todo_list/auth_service/internal/auth_interfaces"
)

// описание структуры слоя репозитория
type AuthRepository struct {
	Identity      authinterfaces.IdentityStore
	LoginAttempts authinterfaces.LoginAttemptsRepository
}

// конструктор для слоя репозиторий
func NewAuthRepository(identity authinterfaces.IdentityStore, attempts authinterfaces.LoginAttemptsRepository) (*AuthRepository, error) {
	// Проверяем обязательные зависимости
	if identity == nil {
		return nil, fmt.Errorf("identity store is required")
	}
	if attempts == nil {
		return nil, fmt.Errorf("login attempts repository is required")
	}
	return &AuthRepository{
		Identity:      identity,
		LoginAttempts: attempts,
	}, nil
}
