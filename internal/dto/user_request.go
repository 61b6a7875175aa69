// File: internal/dto/user_request.go
package dto

import "user-crud/internal/model"

// CreateUserRequest POST /api/users 的 JSON body，所有欄位皆必填
// swagger:model dto.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required" example:"Ann"`
	City     string `json:"city" validate:"required" example:"Paris"`
	Age      int    `json:"age" validate:"required" example:"30"`
	Email    string `json:"email" validate:"required" example:"ann@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// UpdateUserRequest PUT /api/users/{id} 的 JSON body
// encoding/json 比對鍵名不分大小寫，舊版 NAME/CITY/AGE 也能綁定
// swagger:model dto.UpdateUserRequest
type UpdateUserRequest struct {
	Name string `json:"name" validate:"required" example:"Anne"`
	City string `json:"city" validate:"required" example:"Lyon"`
	Age  int    `json:"age" validate:"required" example:"31"`
}

func (r UpdateUserRequest) ToUser(id int) *model.User {
	city, age := r.City, r.Age
	return &model.User{ID: id, Name: r.Name, City: &city, Age: &age}
}
