package middleware

import (
	"errors"
	"net/http"
	"reflect"

	"todo_list/shared/toolkit"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ключ контекста с провалидированным телом запроса
const CtxValidatedData = "validatedData"

// создаём экзмепляр валидатора (чтобы он создавался в памяти только при загрузке модуля)
var validate = validator.New()

// ValidateMiddleware создает middleware для валидации тела запроса по тегам `validate`
func ValidateMiddleware(model interface{}) gin.HandlerFunc {
	modelType := reflect.TypeOf(model).Elem()

	return func(c *gin.Context) {
		// Создаем новый экземпляр структуры для валидации
		request := reflect.New(modelType).Interface()

		// Парсим БЕЗ встроенной валидации Gin
		if err := c.ShouldBindBodyWith(request, binding.JSON); err != nil {
			toolkit.AbortWithAPIError(c, http.StatusBadRequest, toolkit.APIError{
				Code:    toolkit.CodeValidationFailed,
				Message: "Invalid JSON format",
			})
			return
		}

		// Валидируем структуру
		if err := validate.Struct(request); err != nil {
			details := make(map[string]string)
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				for _, fieldErr := range validationErrs {
					details[fieldErr.Field()] = fieldErr.Tag()
				}
			}

			toolkit.AbortWithAPIError(c, http.StatusBadRequest, toolkit.APIError{
				Code:    toolkit.CodeValidationFailed,
				Message: "Validation failed",
				Details: details,
			})
			return
		}

		// Сохраняем валидированные данные в контекст для использования в обработчике
		c.Set(CtxValidatedData, request)
		c.Next()
	}
}
