// File: internal/dto/auth_form.go
package dto

// LoginForm 登入表單
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm 註冊表單
type RegisterForm struct {
	Name     string `form:"name" validate:"required,min=2,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}
