package taskserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo_list/shared/config"
	"todo_list/shared/jwt_service"
	"todo_list/shared/toolkit"
	"todo_list/task_service/internal/task_server/dto"
	"todo_list/task_service/internal/task_server/handlers"
	"todo_list/task_service/internal/task_server/service"
	"todo_list/task_service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "task-server-test-secret-32-characters"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	handler http.Handler
	store   *testutil.LaggingTaskStore
	jwt     *jwt_service.JWTService
}

func newTestEnv(t *testing.T, lag time.Duration) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := testutil.NewLaggingTaskStore(lag)
	manager := jwt_service.NewJWTService(&jwt_service.JWTConfig{Secret: testSecret, TokenTTL: time.Hour, Issuer: "test"})

	handler := handlers.NewTaskHandler(service.NewTaskService(store, logger), logger)
	server, err := NewTaskServer(config.UseDefaultServerConfig(), handler, manager, logger)
	require.NoError(t, err)

	return &testEnv{handler: server.Router(), store: store, jwt: manager}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.jwt.Issue(userID, userID+"@example.com", 0)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) dto.TaskResponse {
	t.Helper()
	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []dto.TaskResponse {
	t.Helper()
	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	return tasks
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) toolkit.APIError {
	t.Helper()
	var resp toolkit.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestTaskServer_Hello(t *testing.T) {
	env := newTestEnv(t, 0)
	w := env.do(t, http.MethodGet, "/hello", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaskServer_RequiresBearer(t *testing.T) {
	env := newTestEnv(t, 0)
	plain := env.token(t, "alice")
	other := jwt_service.NewJWTService(&jwt_service.JWTConfig{Secret: strings.Repeat("x", 40), TokenTTL: time.Hour})
	foreign, err := other.Issue("alice", "alice@example.com", 0)
	require.NoError(t, err)

	cases := map[string]func(r *http.Request){
		"нет заголовка": func(r *http.Request) {},
		"без префикса": func(r *http.Request) {
			r.Header.Set("Authorization", plain)
		},
		"мусор": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.token")
		},
		"чужой секрет": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+foreign)
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			setup(req)
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, toolkit.CodeUnauthorized, decodeError(t, w).Code)
		})
	}
}

func TestTaskServer_CRUD(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.token(t, "alice")

	w := env.do(t, http.MethodPost, "/tasks", `{"text":"buy milk","date":"2024-06-01","completed":false,"owner_id":"mallory"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeTask(t, w)
	assert.Equal(t, "alice", created.OwnerID)
	assert.Len(t, created.ID, 24)

	w = env.do(t, http.MethodGet, "/tasks", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = env.do(t, http.MethodPut, "/tasks/"+created.ID, `{"completed":true,"owner_id":"mallory","user_id":"mallory"}`, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeTask(t, w)
	assert.True(t, updated.Completed)
	assert.Equal(t, "buy milk", updated.Text)
	assert.Equal(t, "alice", updated.OwnerID)

	w = env.do(t, http.MethodDelete, "/tasks/"+created.ID, "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, w.Body.String())

	w = env.do(t, http.MethodDelete, "/tasks/"+created.ID, "", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, toolkit.CodeTaskNotFound, decodeError(t, w).Code)
}

func TestTaskServer_Validation(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.token(t, "alice")

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{name: "нет completed", body: `{"text":"x","date":"2024-06-01"}`},
		{name: "нет даты", body: `{"text":"x","completed":false}`},
		{name: "кривая дата", body: `{"text":"x","date":"tomorrow","completed":false}`, field: "date"},
		{name: "пустой текст", body: `{"text":"","date":"2024-06-01","completed":false}`, field: "text"},
		{name: "не json", body: `{"text":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/tasks", tc.body, alice)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			apiErr := decodeError(t, w)
			assert.Equal(t, toolkit.CodeValidationFailed, apiErr.Code)
			if tc.field != "" {
				assert.Equal(t, tc.field, apiErr.Field)
			}
		})
	}

	w := env.do(t, http.MethodPost, "/tasks", `{"text":"x","date":"2024-06-01","completed":false}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeTask(t, w).ID

	w = env.do(t, http.MethodPut, "/tasks/"+id, `{}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/tasks/"+id, `{"owner_id":"bob"}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	latest, ok := env.store.Latest(id)
	require.True(t, ok)
	assert.Equal(t, "alice", latest.OwnerID)
}

func TestTaskServer_OwnerIsolation(t *testing.T) {
	env := newTestEnv(t, 0)
	alice, bob := env.token(t, "alice"), env.token(t, "bob")

	w := env.do(t, http.MethodPost, "/tasks", `{"text":"secret","date":"2024-06-01","completed":false}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeTask(t, w).ID

	w = env.do(t, http.MethodGet, "/tasks", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))

	w = env.do(t, http.MethodPut, "/tasks/"+id, `{"completed":true}`, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/tasks/"+id, "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/tasks/not-an-object-id", "", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	latest, ok := env.store.Latest(id)
	require.True(t, ok)
	assert.False(t, latest.Completed)
}

func TestTaskServer_EventuallyVisible(t *testing.T) {
	env := newTestEnv(t, 100*time.Millisecond)
	alice := env.token(t, "alice")

	w := env.do(t, http.MethodPost, "/tasks", `{"text":"buy milk","date":"2024-06-01","completed":false}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeTask(t, w)

	require.Eventually(t, func() bool {
		w := env.do(t, http.MethodGet, "/tasks", "", alice)
		if w.Code != http.StatusOK {
			return false
		}
		list := decodeList(t, w)
		return len(list) == 1 && list[0].ID == created.ID &&
			list[0].Text == created.Text && list[0].Date == created.Date &&
			list[0].CreatedAt.Equal(created.CreatedAt)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestTaskServer_StoreFailureHidesDetails(t *testing.T) {
	env := newTestEnv(t, 0)
	env.store.Err = assert.AnError

	w := env.do(t, http.MethodGet, "/tasks", "", env.token(t, "alice"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, toolkit.CodeInternalError, apiErr.Code)
	assert.Equal(t, toolkit.InternalErrorMessage, apiErr.Message)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestTaskServer_Ready(t *testing.T) {
	env := newTestEnv(t, 0)

	w := env.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")

	env.store.Err = assert.AnError
	w = env.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, toolkit.CodeNotReady, decodeError(t, w).Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
