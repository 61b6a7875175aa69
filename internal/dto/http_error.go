// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// error 錯誤描述
	Error string `json:"error" example:"Failed to fetch users: connection refused"`
}

// MessageResponse 成功或查無資料時的訊息
// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"User created successfully"`
}
