// File: internal/model/user.go
package model

// User 對應 users 資料表的一列
// 透過表單新增的使用者沒有 email/密碼，註冊的使用者沒有 city/age，
// 因此這些欄位可能為 NULL
type User struct {
	ID           int     `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	City         *string `db:"city" json:"city"`
	Age          *int    `db:"age" json:"age"`
	Email        *string `db:"email" json:"email"`
	PasswordHash *string `db:"password_hash" json:"-"`
}

// HasPassword 回報此使用者是否可用密碼登入
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
