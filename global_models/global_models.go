// общие модели, которые используют несколько сервисов
package globalmodels

import (
	"errors"
	"time"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists in base")
	ErrCacheMiss         = errors.New("no value in cache for the key")
)

// структура пользователя для авторизации и регистрации
type User struct {
	ID           string     // ID пользователя (генерируется базой), он же subject_id в токене
	Email        string     // адрес электронной почты (уникален, регистр учитывается)
	Name         string     // отображаемое имя
	PasswordHash string     // bcrypt хэш пароля (соль внутри хэша)
	CreatedAt    time.Time  // время регистрации
	UpdatedAt    *time.Time // может быть nil
}
