// Package types provides HTTP error type definitions.
package types

import "time"

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code      string      `json:"code"`                // 错误码
	Message   string      `json:"message"`             // 错误消息
	Details   interface{} `json:"details,omitempty"`   // 详细信息
	RequestID string      `json:"requestId,omitempty"` // 请求ID
	Timestamp string      `json:"timestamp,omitempty"` // 时间戳
}

// 错误码常量
const (
	// 请求错误
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrNotConnected    = "NOT_CONNECTED"
	ErrNotFound        = "NOT_FOUND"

	// 钱包错误
	ErrProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrConnectionRejected  = "CONNECTION_REJECTED"

	// 内容存储错误
	ErrUploadFailed = "UPLOAD_FAILED"

	// 注册合约错误
	ErrTransactionRejected = "TRANSACTION_REJECTED"
	ErrTransactionFailed   = "TRANSACTION_FAILED"
	ErrQueryFailed         = "QUERY_FAILED"

	// 服务器错误
	ErrInternal = "INTERNAL"
)

// NewErrorResponse 创建错误响应
func NewErrorResponse(code, message string, details interface{}) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// WithRequestID 添加请求ID
func (e *ErrorResponse) WithRequestID(requestID string) *ErrorResponse {
	e.Error.RequestID = requestID
	return e
}
