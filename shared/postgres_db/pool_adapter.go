package postgresdb

import (
	"context"
	"errors"

	"todo_list/global_models/global_db"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var _ global_db.Pool = (*PoolAdapter)(nil)

// PoolAdapter - pgxpool за интерфейсом global_db.Pool; репозиторий пользователей про pgx не знает
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (a *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := a.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (a *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) global_db.Row {
	return userRow{row: a.pool.QueryRow(ctx, sql, args...)}
}

func (a *PoolAdapter) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Close закрывает пул; ошибки у pgxpool тут не бывает
func (a *PoolAdapter) Close() error {
	a.pool.Close()
	return nil
}

// userRow подменяет pgx.ErrNoRows на global_db.ErrNoRows
type userRow struct {
	row pgx.Row
}

func (r userRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return global_db.ErrNoRows
		}
		return err
	}
	return nil
}
