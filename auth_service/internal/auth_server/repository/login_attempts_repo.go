package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	authinterfaces "todo_list/auth_service/internal/auth_interfaces"
	globalmodels "todo_list/global_models"
	"todo_list/global_models/global_cache"
)

var _ authinterfaces.LoginAttemptsRepository = (*LoginAttemptsRepo)(nil)

const loginAttemptsPrefix = "login_attempts:"

// счётчик неудачных входов: окно начинается с первой неудачи и не продлевается последующими
type LoginAttemptsRepo struct {
	cache       global_cache.Cache
	maxAttempts int64
	window      time.Duration
}

func NewLoginAttemptsRepo(cache global_cache.Cache, maxAttempts int, window time.Duration) *LoginAttemptsRepo {
	return &LoginAttemptsRepo{
		cache:       cache,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func attemptsKey(email string) string {
	return loginAttemptsPrefix + email
}

// заблокирован ли вход для email
func (r *LoginAttemptsRepo) IsBlocked(ctx context.Context, email string) (bool, error) {
	val, err := r.cache.Get(ctx, attemptsKey(email))
	if errors.Is(err, globalmodels.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login attempts: %w", err)
	}

	attempts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("corrupted login attempts counter: %w", err)
	}
	if attempts < r.maxAttempts {
		return false, nil
	}

	// счётчик без окна не должен блокировать навсегда
	if err := r.ensureWindow(ctx, attemptsKey(email)); err != nil {
		return false, err
	}
	return true, nil
}

// фиксируем неудачную попытку, возвращаем текущее количество
func (r *LoginAttemptsRepo) RegisterFailure(ctx context.Context, email string) (int64, error) {
	key := attemptsKey(email)

	attempts, err := r.cache.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment login attempts: %w", err)
	}

	// первая неудача открывает окно, последующие его не продлевают
	if attempts == 1 {
		if err := r.cache.Expire(ctx, key, r.window); err != nil {
			return attempts, fmt.Errorf("failed to set login attempts window: %w", err)
		}
		return attempts, nil
	}
	if err := r.ensureWindow(ctx, key); err != nil {
		return attempts, err
	}
	return attempts, nil
}

// ensureWindow ставит окно ключу, оставшемуся без TTL (например, Expire упал на первой неудаче)
func (r *LoginAttemptsRepo) ensureWindow(ctx context.Context, key string) error {
	ttl, err := r.cache.TTL(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read login attempts window: %w", err)
	}
	if ttl >= 0 {
		return nil
	}
	if err := r.cache.Expire(ctx, key, r.window); err != nil {
		return fmt.Errorf("failed to set login attempts window: %w", err)
	}
	return nil
}

// успешный вход сбрасывает счётчик
func (r *LoginAttemptsRepo) Reset(ctx context.Context, email string) error {
	if err := r.cache.Delete(ctx, attemptsKey(email)); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}
