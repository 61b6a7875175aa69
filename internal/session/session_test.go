package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSessionState(t *testing.T) {
	s := New()
	require.False(t, s.Authenticated())
	require.False(t, s.Dirty())
	require.Nil(t, s.PopFlashes())
	require.False(t, s.Dirty())

	s.AddFlash(FlashInfo, "a")
	s.AddFlash(FlashError, "b")
	require.True(t, s.Dirty())
	require.Equal(t, []Flash{{FlashInfo, "a"}, {FlashError, "b"}}, s.PopFlashes())
	require.Nil(t, s.PopFlashes())

	s.id = "old"
	s.Login(5, "Ann")
	require.True(t, s.Authenticated())
	require.Equal(t, "", s.ID())
	require.Equal(t, "old", s.previousID)

	s.AddFlash(FlashInfo, "bye")
	s.Logout()
	require.False(t, s.Authenticated())
	require.Empty(t, s.UserName)
	require.Len(t, s.Flashes, 1)
}

func TestFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	s := FromContext(c)
	require.NotNil(t, s)
	require.Same(t, s, FromContext(c))

	mine := New()
	c.Set(ContextKey, mine)
	require.Same(t, mine, FromContext(c))
}
