package repository

import (
	"context"
	"errors"
	"fmt"

	authinterfaces "todo_list/auth_service/internal/auth_interfaces"
	"todo_list/auth_service/internal/domain"
	globalmodels "todo_list/global_models"

	"golang.org/x/crypto/bcrypt"
)

var _ authinterfaces.IdentityStore = (*IdentityStore)(nil)

// IdentityStore - учётные записи пользователей. Пароль хранится только в виде bcrypt хэша.
type IdentityStore struct {
	db        authinterfaces.DBRepoInterface
	cost      int
	dummyHash []byte // хэш для сравнения, когда пользователя нет
}

// cost <= 0 - bcrypt.DefaultCost
func NewIdentityStore(db authinterfaces.DBRepoInterface, cost int) (*IdentityStore, error) {
	if db == nil {
		return nil, errors.New("db repository is required")
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-absent-users"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &IdentityStore{
		db:        db,
		cost:      cost,
		dummyHash: dummyHash,
	}, nil
}

func (s *IdentityStore) FindByEmail(ctx context.Context, email string) (*globalmodels.User, error) {
	return s.db.FindUserByEmail(ctx, email)
}

// регистрация нового пользователя
func (s *IdentityStore) Create(ctx context.Context, email, password, name string) (*globalmodels.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// тег max считает руны, многобайтный пароль доходит сюда
		return nil, domain.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.db.AddUser(ctx, email, string(hashedPassword), name)
	if err != nil {
		if errors.Is(err, globalmodels.ErrUserAlreadyExists) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, err
	}
	return user, nil
}

// проверка пары email/пароль. Для несуществующего пользователя сравнение с dummy хэшем
// всё равно выполняется, так что обе ветки отказа выглядят одинаково.
func (s *IdentityStore) CheckCredentials(ctx context.Context, email, password string) (*globalmodels.User, error) {
	user, err := s.db.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
