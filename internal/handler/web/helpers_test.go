package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"user-crud/internal/database"
	"user-crud/internal/model"
	"user-crud/internal/service"
	"user-crud/internal/session"
	"user-crud/internal/store"
	"user-crud/internal/validation"
	"user-crud/internal/view"

	"github.com/labstack/echo/v4"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.MustNew()
	e.Validator = validation.New()
	return e
}

// newCtx 建立帶有 session 的 context；body 不為空時以表單送出
func newCtx(e *echo.Echo, method, path, body string, sess *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess == nil {
		sess = session.New()
	}
	c.Set(session.ContextKey, sess)
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func restore() {
	listUsers = store.ListUsers
	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	updateUser = store.UpdateUser
	deleteUser = store.DeleteUser
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
}

// memUsers 以記憶體模擬 users 資料表，透過函式變數注入
type memUsers struct {
	mu     sync.Mutex
	rows   []model.User
	nextID int
}

func installMemUsers(t *testing.T) *memUsers {
	t.Helper()
	t.Cleanup(restore)
	m := &memUsers{nextID: 1}

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return append([]model.User{}, m.rows...), nil
	}
	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.rows {
			if u.ID == id {
				cp := u
				return &cp, nil
			}
		}
		return nil, store.ErrUserNotFound
	}
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.rows {
			if u.Email != nil && *u.Email == email {
				cp := u
				return &cp, nil
			}
		}
		return nil, store.ErrUserNotFound
	}
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		u.ID = m.nextID
		m.nextID++
		m.rows = append(m.rows, *u)
		return u, nil
	}
	updateUser = func(_ context.Context, _ database.DB, u *model.User) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.rows {
			if m.rows[i].ID == u.ID {
				m.rows[i].Name, m.rows[i].City, m.rows[i].Age = u.Name, u.City, u.Age
			}
		}
		return nil
	}
	deleteUser = func(_ context.Context, _ database.DB, id int) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.rows {
			if m.rows[i].ID == id {
				m.rows = append(m.rows[:i], m.rows[i+1:]...)
				break
			}
		}
		return nil
	}
	return m
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakePurger struct{ ids []int }

func (f *fakePurger) PurgeUser(userID int) { f.ids = append(f.ids, userID) }
