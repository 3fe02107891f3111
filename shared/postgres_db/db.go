package postgresdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"todo_list/shared/config"

	"github.com/jackc/pgx/v4/pgxpool"
)

// таймаут проверочного ping, если в конфиге не задан connect_timeout
const defaultPingTimeout = 5 * time.Second

// PgRepo владеет пулом соединений хранилища пользователей
type PgRepo struct {
	closeOnce sync.Once
	pool      *pgxpool.Pool
}

// NewPgRepo поднимает пул по DSN из конфига и сразу проверяет, что база отвечает
func NewPgRepo(ctx context.Context, conf *config.PostgresDBConfig) (*PgRepo, error) {
	poolConfig, err := pgxpool.ParseConfig(conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB DSN: %w", err)
	}
	applyPoolSettings(poolConfig, conf)

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout(conf))
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PgRepo{pool: pool}, nil
}

func applyPoolSettings(poolConfig *pgxpool.Config, conf *config.PostgresDBConfig) {
	poolConfig.MaxConns = conf.MaxConns
	poolConfig.MinConns = conf.MinConns
	poolConfig.HealthCheckPeriod = conf.HealthCheckPeriod
	poolConfig.MaxConnLifetime = conf.MaxConnLifetime
	poolConfig.MaxConnIdleTime = conf.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = conf.ConnectTimeout
}

func pingTimeout(conf *config.PostgresDBConfig) time.Duration {
	if conf.ConnectTimeout > 0 {
		return conf.ConnectTimeout
	}
	return defaultPingTimeout
}

// Close можно звать сколько угодно раз
func (r *PgRepo) Close() {
	r.closeOnce.Do(func() {
		if r.pool != nil {
			r.pool.Close()
		}
	})
}

// Adapter - пул в виде global_db.Pool для репозиториев
func (r *PgRepo) Adapter() *PoolAdapter {
	return NewPoolAdapter(r.pool)
}
