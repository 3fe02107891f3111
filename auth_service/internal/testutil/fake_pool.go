// фейки для тестов auth_service
package testutil

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	globalmodels "todo_list/global_models"
	"todo_list/global_models/global_db"
)

var _ global_db.Pool = (*FakeUsersPool)(nil)

// FakeUsersPool - in-memory таблица users, понимает только запросы репозитория пользователей
type FakeUsersPool struct {
	mu      sync.Mutex
	users   map[string]*globalmodels.User
	nextID  int
	Err     error // если задана - возвращается любым запросом
	Queries []string
}

func NewFakeUsersPool() *FakeUsersPool {
	return &FakeUsersPool{users: make(map[string]*globalmodels.User)}
}

// Users - количество записей в таблице
func (p *FakeUsersPool) Users() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.users)
}

// User - запись по email (копия)
func (p *FakeUsersPool) User(email string) (globalmodels.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[email]
	if !ok {
		return globalmodels.User{}, false
	}
	return *u, true
}

func (p *FakeUsersPool) Exec(_ context.Context, sql string, _ ...any) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queries = append(p.Queries, sql)
	if p.Err != nil {
		return 0, p.Err
	}
	return 0, nil
}

func (p *FakeUsersPool) QueryRow(_ context.Context, sql string, args ...any) global_db.Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queries = append(p.Queries, sql)

	if p.Err != nil {
		return fakeRow{err: p.Err}
	}

	switch {
	case strings.Contains(sql, "INSERT INTO users"):
		email := args[0].(string)
		if _, exists := p.users[email]; exists {
			return fakeRow{err: global_db.ErrNoRows}
		}
		p.nextID++
		user := &globalmodels.User{
			ID:           fmt.Sprintf("00000000-0000-0000-0000-%012d", p.nextID),
			Email:        email,
			PasswordHash: args[1].(string),
			Name:         args[2].(string),
			CreatedAt:    time.Now().UTC(),
		}
		p.users[email] = user
		return fakeRow{values: []any{user.ID, user.CreatedAt}}

	case strings.Contains(sql, "FROM users"):
		user, ok := p.users[args[0].(string)]
		if !ok {
			return fakeRow{err: global_db.ErrNoRows}
		}
		return fakeRow{values: []any{user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt}}
	}

	return fakeRow{err: fmt.Errorf("unexpected query: %s", sql)}
}

func (p *FakeUsersPool) Ping(context.Context) error {
	return p.Err
}

func (p *FakeUsersPool) Close() error {
	return nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}
