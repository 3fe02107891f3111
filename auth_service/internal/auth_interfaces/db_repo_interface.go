package authinterfaces

import (
	"context"

	globalmodels "todo_list/global_models"
)

// интерфейс слоя базы данных для пользователей
type DBRepoInterface interface {
	EnsureSchema(ctx context.Context) error
	AddUser(ctx context.Context, email, hashedPass, name string) (*globalmodels.User, error)
	FindUserByEmail(ctx context.Context, email string) (*globalmodels.User, error)
}

// хранилище учётных записей: хэширование и проверка паролей поверх DBRepoInterface
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*globalmodels.User, error)
	Create(ctx context.Context, email, password, name string) (*globalmodels.User, error)
	CheckCredentials(ctx context.Context, email, password string) (*globalmodels.User, error)
}

// счётчик неудачных попыток входа (redis или inmemory кэш)
type LoginAttemptsRepository interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RegisterFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}
