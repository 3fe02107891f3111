package repository

import (
	"context"
	"errors"
	"fmt"

	authinterfaces "todo_list/auth_service/internal/auth_interfaces"
	globalmodels "todo_list/global_models"
	"todo_list/global_models/global_db"
)

// создаём репозиторий базы данных для сервиса авторизации на базе адаптера к pgxpool

// Реализуем ТОЛЬКО то, что нужно auth_service
type AuthUserDBRepository struct {
	pool global_db.Pool // строится на базе глобального интерфейса
}

// создаём конструктор для слоя базы данных
func NewAuthUserRepository(pool global_db.Pool) authinterfaces.DBRepoInterface {
	return &AuthUserDBRepository{pool: pool}
}

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ
	)
`

// создаём таблицу пользователей, если её ещё нет
func (a *AuthUserDBRepository) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// добавление пользователя. Дубликат email определяется атомарно в одном запросе.
func (a *AuthUserDBRepository) AddUser(ctx context.Context, email, hashedPass, name string) (*globalmodels.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        INSERT INTO users (email, password_hash, name)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO NOTHING
        RETURNING id::text, created_at
    `

	user := globalmodels.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPass,
	}
	err := a.pool.QueryRow(ctx, query, email, hashedPass, name).Scan(&user.ID, &user.CreatedAt)

	if errors.Is(err, global_db.ErrNoRows) {
		return nil, globalmodels.ErrUserAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

func (a *AuthUserDBRepository) FindUserByEmail(ctx context.Context, email string) (*globalmodels.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
        SELECT id::text, email, name, password_hash, created_at, updated_at
        FROM users
        WHERE email = $1
        LIMIT 1
    `

	var user globalmodels.User
	err := a.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, global_db.ErrNoRows) {
			return nil, nil // nil, nil - пользователь не найден
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}
