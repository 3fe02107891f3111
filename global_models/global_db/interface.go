// абстракция реляционной БД, чтобы репозитории не зависели от конкретного драйвера
package global_db

import (
	"context"
	"errors"
)

// Pool - пул соединений хранилища пользователей.
// Репозиторию хватает точечных запросов: вставка, выборка одной строки и DDL.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Ping(ctx context.Context) error
	Close() error
}

type Row interface {
	Scan(dest ...any) error
}

// ErrNoRows - строки нет; драйвер-независимая замена pgx.ErrNoRows
var ErrNoRows = errors.New("no rows in result set")
