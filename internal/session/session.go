// Package session 提供以 Redis 儲存、以簽章 cookie 識別的伺服器端 session。
// 每個請求的 session 透過 echo.Context 傳遞，不使用全域狀態。
package session

import (
	"github.com/labstack/echo/v4"
)

// ContextKey 是 session 存放在 echo.Context 中的鍵
const ContextKey = "session"

// Flash 類別
const (
	FlashInfo  = "info"
	FlashError = "error"
)

// Flash 是只顯示一次的使用者提示
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session 是單一瀏覽器的伺服器端狀態
type Session struct {
	UserID   int     `json:"user_id,omitempty"`
	UserName string  `json:"user_name,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`

	id         string
	previousID string
	dirty      bool
}

// New 建立尚未儲存的匿名 session
func New() *Session {
	return &Session{}
}

func (s *Session) ID() string { return s.id }

// Dirty 回報 session 在本次請求中是否被修改
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) Authenticated() bool {
	return s.UserID != 0
}

// Login 記錄登入的使用者並要求更換 session ID
func (s *Session) Login(userID int, userName string) {
	if s.id != "" {
		s.previousID = s.id
		s.id = ""
	}
	s.UserID = userID
	s.UserName = userName
	s.dirty = true
}

// Logout 無條件清除使用者資訊，保留尚未顯示的 flash
func (s *Session) Logout() {
	s.UserID = 0
	s.UserName = ""
	s.dirty = true
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes 取出並清空所有 flash
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	f := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return f
}

// FromContext 取得請求的 session；middleware 未掛載時回傳僅存在於本次請求的新 session
func FromContext(c echo.Context) *Session {
	if s, ok := c.Get(ContextKey).(*Session); ok && s != nil {
		return s
	}
	s := New()
	c.Set(ContextKey, s)
	return s
}
