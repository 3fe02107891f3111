// описание сервисного слоя сервера авторизации
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todo_list/auth_service/internal/auth_server/repository"
	"todo_list/auth_service/internal/domain"
	globalmodels "todo_list/global_models"
	"todo_list/shared/jwt_service"
)

// описание интерфейса сервисного слоя
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password, name string) (*globalmodels.User, error)
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Verify(ctx context.Context, token string) (*domain.VerifiedIdentity, error)
}

var _ AuthServiceInterface = (*AuthService)(nil)

// описание структуры сервисного слоя (состояния между запросами нет)
type AuthService struct {
	repo   *repository.AuthRepository
	jwt    jwt_service.JWTManager
	logger *slog.Logger
}

// Конструктор сервисного слоя
func NewAuthService(repo *repository.AuthRepository, jwt jwt_service.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		jwt:    jwt,
		logger: logger,
	}
}

// Метод регистрации пользователя. Токен при регистрации не выдаётся.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*globalmodels.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.repo.Identity.Create(ctx, email, password, name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.logger.Warn("email already exists", "email", email)
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "email", email, "user_id", user.ID)
	return user, nil
}

// Метод логина пользователя: проверка блокировки -> проверка пароля -> выпуск токена
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// сбой счётчика попыток не мешает входу
	blocked, err := s.repo.LoginAttempts.IsBlocked(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", "email", email, "error", err)
	} else if blocked {
		s.logger.Warn("login blocked by throttle", "email", email)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.Identity.CheckCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Warn("invalid login attempt", "email", email)
			if _, ferr := s.repo.LoginAttempts.RegisterFailure(ctx, email); ferr != nil {
				s.logger.Warn("failed to register login failure", "email", email, "error", ferr)
			}
			return nil, err
		}
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}

	if err := s.repo.LoginAttempts.Reset(ctx, email); err != nil {
		s.logger.Warn("failed to reset login attempts", "email", email, "error", err)
	}

	ttl := s.jwt.TokenTTL()
	token, err := s.jwt.Issue(user.ID, user.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", "email", email, "user_id", user.ID)
	return &domain.LoginResult{
		UserID:    user.ID,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: ttl,
	}, nil
}

// Метод проверки токена. Ошибка оборачивает и domain.ErrUnauthorized, и причину из кодека.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.VerifiedIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	return &domain.VerifiedIdentity{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}
