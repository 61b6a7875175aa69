package view

import (
	"user-crud/internal/dto"
	"user-crud/internal/model"
	"user-crud/internal/session"
	"user-crud/internal/validation"
)

// Page 是所有頁面共用的版面資料
type Page struct {
	Title       string
	Flashes     []session.Flash
	CSRF        string
	CurrentUser string
}

type HomePage struct {
	Page
	Users []model.User
}

// UserFormPage 供新增與編輯使用者共用；Action 為表單送出路徑
type UserFormPage struct {
	Page
	Action string
	Form   dto.UserForm
	Errors validation.FieldErrors
}

type RegisterPage struct {
	Page
	Form   dto.RegisterForm
	Errors validation.FieldErrors
}

type LoginPage struct {
	Page
	Form   dto.LoginForm
	Errors validation.FieldErrors
}

type DashboardPage struct {
	Page
	UserName string
}
