// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"sync"

	"user-crud/internal/model"
)

// ErrInvalidCredentials 不區分「帳號不存在」與「密碼錯誤」
var ErrInvalidCredentials = errors.New("invalid email or password")

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// AuthenticateUser 以 bcrypt 驗證使用者密碼
// 沒有密碼的使用者 (透過表單新增) 一律驗證失敗，但仍會與假哈希比對一次，
// 讓回應時間不會透露帳號是否存在；查無使用者時傳入零值 model.User 即可。
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if !user.HasPassword() {
		_ = ComparePassword(fakeHash(), password)
		return ErrInvalidCredentials
	}
	if err := ComparePassword(*user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func fakeHash() string {
	dummyHashOnce.Do(func() {
		h, err := HashPassword("timing-equalizer")
		if err == nil {
			dummyHash = h
		}
	})
	return dummyHash
}
