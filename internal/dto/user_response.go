// File: internal/dto/user_response.go
package dto

import "user-crud/internal/model"

// UserResponse 對外的使用者資料，不含密碼
// swagger:model dto.UserResponse
type UserResponse struct {
	ID    int     `json:"id" example:"1"`
	Name  string  `json:"name" example:"Ann"`
	City  *string `json:"city" example:"Paris"`
	Age   *int    `json:"age" example:"30"`
	Email *string `json:"email" example:"ann@example.com"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, City: u.City, Age: u.Age, Email: u.Email}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
