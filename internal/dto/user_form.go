// File: internal/dto/user_form.go
package dto

import (
	"strconv"
	"strings"

	"user-crud/internal/model"
)

// UserForm 新增/編輯使用者的 HTML 表單
// Age 以字串綁定，才能把「不是整數」當成欄位錯誤顯示
type UserForm struct {
	Name string `form:"name" validate:"required,min=2,max=50"`
	City string `form:"city" validate:"required,min=2,max=50"`
	Age  string `form:"age" validate:"required,integer"`
}

// UserFormFrom 以資料庫中的值預填表單
func UserFormFrom(u *model.User) UserForm {
	f := UserForm{Name: u.Name}
	if u.City != nil {
		f.City = *u.City
	}
	if u.Age != nil {
		f.Age = strconv.Itoa(*u.Age)
	}
	return f
}

// ToUser 轉成 model；必須先通過驗證
func (f UserForm) ToUser(id int) *model.User {
	city := f.City
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	return &model.User{ID: id, Name: f.Name, City: &city, Age: &age}
}
