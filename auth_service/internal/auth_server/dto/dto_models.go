// описание моделей запросов и ответов сервиса авторизации
package dto

// структура запроса для регистрации пользователя
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"` // bcrypt не хэширует больше 72 байт
	Name     string `json:"name" validate:"required"`
}

// структура ответа при успешной регистрации (токен не выдаётся)
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
}

// структура запроса для логина пользователя
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// структура ответа на запрос login
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	UserID    string `json:"user_id"`
	ExpiresIn int64  `json:"expires_in"` // в секундах
}

// структура ответа на проверку токена
type VerifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
