package web

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"user-crud/internal/database"
	"user-crud/internal/model"
	"user-crud/internal/service"
	"user-crud/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLoginReachesDashboard(t *testing.T) {
	e := newEcho()
	m := installMemUsers(t)
	sess := session.New()

	ctx, rec := newCtx(e, http.MethodPost, "/register", "name=Ann&email=Ann@Example.com&password=secret1", sess)
	require.NoError(t, RegisterHandler(nil)(ctx))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, "Registration successful. Please log in.", sess.PopFlashes()[0].Message)
	require.Equal(t, 1, m.count())

	stored, err := getUserByEmail(context.Background(), nil, "ann@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", *stored.PasswordHash)
	require.Nil(t, stored.City)

	ctx, rec = newCtx(e, http.MethodPost, "/login", "email=ann@example.com&password=secret1", sess)
	require.NoError(t, LoginHandler(nil)(ctx))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	require.True(t, sess.Authenticated())
	require.Equal(t, stored.ID, sess.UserID)

	ctx, rec = newCtx(e, http.MethodGet, "/dashboard", "", sess)
	require.NoError(t, DashboardHandler()(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Hello, Ann! You are in Dashboard.")
	require.Contains(t, rec.Body.String(), "Logged in successfully.")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEcho()
	m := installMemUsers(t)
	email := "ann@example.com"
	_, _ = createUser(context.Background(), nil, &model.User{Name: "Ann", Email: &email})

	sess := session.New()
	ctx, rec := newCtx(e, http.MethodPost, "/register", "name=Other&email=ANN@example.com&password=secret1", sess)
	require.NoError(t, RegisterHandler(nil)(ctx))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, []session.Flash{{Category: session.FlashError, Message: "Email is already registered. Please use a different email."}}, sess.Flashes)
	require.Equal(t, 1, m.count())
}

func TestRegisterHandlerErrors(t *testing.T) {
	e := newEcho()

	t.Run("invalid form", func(t *testing.T) {
		m := installMemUsers(t)
		ctx, rec := newCtx(e, http.MethodPost, "/register", "name=A&email=nope&password=123", nil)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Field must be at least 2 characters long.")
		require.Contains(t, body, "Invalid email address.")
		require.Contains(t, body, "Field must be at least 6 characters long.")
		require.Equal(t, 0, m.count())
	})

	t.Run("lookup error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) { return nil, errors.New("timeout") }
		sess := session.New()
		ctx, rec := newCtx(e, http.MethodPost, "/register", "name=Ann&email=a@b.com&password=secret1", sess)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))
		require.Equal(t, "Registration error: timeout", sess.Flashes[0].Message)
	})

	t.Run("hash error", func(t *testing.T) {
		installMemUsers(t)
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		sess := session.New()
		ctx, rec := newCtx(e, http.MethodPost, "/register", "name=Ann&email=a@b.com&password=secret1", sess)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))
		require.Equal(t, session.FlashError, sess.Flashes[0].Category)
	})
}

func TestLoginWrongPasswordDoesNotRevealEmail(t *testing.T) {
	e := newEcho()
	installMemUsers(t)
	hash, err := service.HashPassword("secret1")
	require.NoError(t, err)
	email := "ann@example.com"
	_, _ = createUser(context.Background(), nil, &model.User{Name: "Ann", Email: &email, PasswordHash: &hash})

	attempt := func(body string) (*session.Session, string) {
		sess := session.New()
		ctx, rec := newCtx(e, http.MethodPost, "/login", body, sess)
		require.NoError(t, LoginHandler(nil)(ctx))
		require.Equal(t, http.StatusFound, rec.Code)
		return sess, rec.Header().Get(echo.HeaderLocation)
	}

	wrong, loc1 := attempt("email=ann@example.com&password=wrong-one")
	unknown, loc2 := attempt("email=nobody@example.com&password=wrong-one")

	require.False(t, wrong.Authenticated())
	require.False(t, unknown.Authenticated())
	require.Equal(t, "/login", loc1)
	require.Equal(t, loc1, loc2)
	require.Equal(t, wrong.Flashes, unknown.Flashes)
	require.Equal(t, "Invalid email or password.", wrong.Flashes[0].Message)
}

func TestLoginUnknownEmailStillChecksPassword(t *testing.T) {
	e := newEcho()
	installMemUsers(t)
	var got model.User
	calls := 0
	authenticateUser = func(_ context.Context, u model.User, _ string) error {
		calls++
		got = u
		return service.ErrInvalidCredentials
	}

	ctx, _ := newCtx(e, http.MethodPost, "/login", "email=ghost@example.com&password=x", nil)
	require.NoError(t, LoginHandler(nil)(ctx))
	require.Equal(t, 1, calls)
	require.Equal(t, model.User{}, got)
}

func TestLoginHandlerErrors(t *testing.T) {
	e := newEcho()

	t.Run("invalid form", func(t *testing.T) {
		ctx, rec := newCtx(e, http.MethodPost, "/login", "email=&password=", nil)
		require.NoError(t, LoginHandler(nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "This field is required.")
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) { return nil, errors.New("gone") }
		sess := session.New()
		ctx, rec := newCtx(e, http.MethodPost, "/login", "email=a@b.com&password=x", sess)
		require.NoError(t, LoginHandler(nil)(ctx))
		require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		require.Equal(t, "Login error: gone", sess.Flashes[0].Message)
		require.False(t, sess.Authenticated())
	})
}

func TestLogoutHandler(t *testing.T) {
	e := newEcho()
	sess := session.New()
	sess.Login(3, "Ann")
	ctx, rec := newCtx(e, http.MethodGet, "/logout", "", sess)
	require.NoError(t, LogoutHandler()(ctx))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	require.False(t, sess.Authenticated())
	require.Empty(t, sess.UserName)
	require.Equal(t, "Logged out successfully.", sess.Flashes[0].Message)
}

func TestDashboardWithoutNameRedirects(t *testing.T) {
	e := newEcho()
	sess := session.New()
	sess.UserID = 5
	ctx, rec := newCtx(e, http.MethodGet, "/dashboard", "", sess)
	require.NoError(t, DashboardHandler()(ctx))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthFormsRender(t *testing.T) {
	e := newEcho()
	ctx, rec := newCtx(e, http.MethodGet, "/register", "", nil)
	ctx.Set(csrfContextKey, "tok-1")
	require.NoError(t, RegisterFormHandler()(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `value="tok-1"`)

	ctx, rec = newCtx(e, http.MethodGet, "/login", "", nil)
	require.NoError(t, LoginFormHandler()(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `action="/login"`)
}

func TestErrorHandler(t *testing.T) {
	e := newEcho()
	h := ErrorHandler(e)

	ctx, rec := newCtx(e, http.MethodGet, "/nowhere", "", nil)
	h(echo.ErrNotFound, ctx)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "404 - Page not found")

	ctx, rec = newCtx(e, http.MethodGet, "/api/nowhere", "", nil)
	h(echo.ErrNotFound, ctx)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	ctx, rec = newCtx(e, http.MethodPost, "/addUsers", "", nil)
	h(echo.NewHTTPError(http.StatusForbidden, "invalid csrf token"), ctx)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotContains(t, rec.Body.String(), "Page not found")
}

