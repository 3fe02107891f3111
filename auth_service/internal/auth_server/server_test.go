package authserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_list/auth_service/internal/auth_server/dto"
	"todo_list/auth_service/internal/auth_server/handlers"
	"todo_list/auth_service/internal/auth_server/repository"
	"todo_list/auth_service/internal/auth_server/service"
	"todo_list/auth_service/internal/testutil"
	"todo_list/shared/config"
	"todo_list/shared/inmemory_cache"
	"todo_list/shared/jwt_service"
	"todo_list/shared/toolkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "auth-server-test-secret-32-characters"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, now func() time.Time) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := repository.NewIdentityStore(repository.NewAuthUserRepository(testutil.NewFakeUsersPool()), bcrypt.MinCost)
	require.NoError(t, err)

	cache, err := inmemory_cache.NewInmemoryShardedCache(4, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	repo, err := repository.NewAuthRepository(store, repository.NewLoginAttemptsRepo(cache, 3, time.Minute))
	require.NoError(t, err)

	opts := []jwt_service.Option{}
	if now != nil {
		opts = append(opts, jwt_service.WithTimeFunc(now))
	}
	manager := jwt_service.NewJWTService(&jwt_service.JWTConfig{Secret: testSecret, TokenTTL: time.Hour, Issuer: "test"}, opts...)

	handler := handlers.NewAuthHandler(service.NewAuthService(repo, manager, logger), logger)
	server, err := NewAuthServer(config.UseDefaultServerConfig(), handler, logger)
	require.NoError(t, err)
	return server.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) toolkit.APIError {
	t.Helper()
	var resp toolkit.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestAuthServer_Hello(t *testing.T) {
	h := newTestServer(t, nil)
	w := doJSON(t, h, http.MethodGet, "/hello", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello from auth server!")
}

func TestAuthServer_RegisterLoginVerify(t *testing.T) {
	h := newTestServer(t, nil)

	w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"pw","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var reg dto.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.Equal(t, "User registered successfully", reg.Message)
	assert.Equal(t, "alice@example.com", reg.Email)
	assert.NotEmpty(t, reg.UserID)
	assert.NotContains(t, w.Body.String(), "token")

	w = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "Bearer", login.TokenType)
	assert.EqualValues(t, 3600, login.ExpiresIn)
	assert.Equal(t, reg.UserID, login.UserID)

	w = doJSON(t, h, http.MethodPost, "/auth/verify", "", login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var verified dto.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.Equal(t, "alice@example.com", verified.Email)
	assert.Equal(t, reg.UserID, verified.UserID)
}

func TestAuthServer_RegisterErrors(t *testing.T) {
	h := newTestServer(t, nil)

	w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"pw","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("дубликат", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"pw2","name":"A"}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, toolkit.CodeUserExists, apiErr.Code)
		assert.Equal(t, "Email already exists", apiErr.Message)
	})

	t.Run("нет name", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"bob@example.com","password":"pw"}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, toolkit.CodeValidationFailed, apiErr.Code)
		assert.Equal(t, "required", apiErr.Details["Name"])
	})

	t.Run("кривой email", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"bob","password":"pw","name":"Bob"}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("пароль длиннее 72 символов", func(t *testing.T) {
		body := `{"email":"long@example.com","password":"` + strings.Repeat("a", 73) + `","name":"L"}`
		w := doJSON(t, h, http.MethodPost, "/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, toolkit.CodeValidationFailed, apiErr.Code)
		assert.Equal(t, "max", apiErr.Details["Password"])
	})

	t.Run("многобайтный пароль длиннее 72 байт", func(t *testing.T) {
		// 40 рун, 80 байт: тег max пропускает
		body := `{"email":"cyr@example.com","password":"` + strings.Repeat("я", 40) + `","name":"C"}`
		w := doJSON(t, h, http.MethodPost, "/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, toolkit.CodeValidationFailed, apiErr.Code)
		assert.Equal(t, "password", apiErr.Field)
	})

	t.Run("пароль ровно 72 байта", func(t *testing.T) {
		password := strings.Repeat("b", 72)
		w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"edge@example.com","password":"`+password+`","name":"E"}`, "")
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"edge@example.com","password":"`+password+`"}`, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthServer_LoginErrors(t *testing.T) {
	h := newTestServer(t, nil)
	w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"pw","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"nobody@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeError(t, w).Message)

	// три неудачи подряд -> 429
	for i := 0; i < 3; i++ {
		w = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, toolkit.CodeInvalidCredentials, decodeError(t, w).Code)
	}

	w = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, toolkit.CodeTooManyAttempts, decodeError(t, w).Code)
}

func TestAuthServer_VerifyErrors(t *testing.T) {
	current := time.Now()
	h := newTestServer(t, func() time.Time { return current })

	w := doJSON(t, h, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"pw","name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, h, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	t.Run("нет заголовка", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/verify", "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authorization header is required", decodeError(t, w).Message)
	})

	t.Run("токен без Bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/verify", nil)
		req.Header.Set("Authorization", login.Token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("мусор", func(t *testing.T) {
		w := doJSON(t, h, http.MethodPost, "/auth/verify", "", "not.a.token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, toolkit.CodeUnauthorized, decodeError(t, w).Code)
	})

	t.Run("просрочен", func(t *testing.T) {
		current = current.Add(2 * time.Hour)
		w := doJSON(t, h, http.MethodPost, "/auth/verify", "", login.Token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has expired", decodeError(t, w).Message)
	})
}
