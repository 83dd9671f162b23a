package service

import "fmt"

// APIError 带 HTTP 状态码的业务错误
// controller 层据此决定响应码，避免把状态码判断散落在各处
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError 创建业务错误
func NewAPIError(status int, format string, args ...interface{}) *APIError {
	return &APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}
